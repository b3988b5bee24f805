package sink

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONSink emits a single JSON array, one record per line plus a trailing
// newline, matching spec.md §6: "[\n<obj>,\n<obj>,\n…\n]\n". It does not
// aggregate inputs: one output file per input file.
type JSONSink struct {
	Path        string
	Compression Compression
	Overwrite   bool

	w     io.WriteCloser
	count int
}

func (s *JSONSink) Open() error {
	w, err := openCompressed(s.Path, s.Compression, s.Overwrite)
	if err != nil {
		return err
	}
	s.w = w
	if _, err := io.WriteString(s.w, "[\n"); err != nil {
		return fmt.Errorf("json sink: %w", err)
	}
	return nil
}

func (s *JSONSink) Write(record any) error {
	b, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("json sink: %w", err)
	}
	prefix := ""
	if s.count > 0 {
		prefix = ",\n"
	}
	if _, err := io.WriteString(s.w, prefix+string(b)); err != nil {
		return fmt.Errorf("json sink: %w", err)
	}
	s.count++
	return nil
}

func (s *JSONSink) Close() error {
	if s.w == nil {
		return nil
	}
	if _, err := io.WriteString(s.w, "\n]\n"); err != nil {
		_ = s.w.Close()
		return fmt.Errorf("json sink: %w", err)
	}
	return s.w.Close()
}

func (s *JSONSink) AggregatesInputs() bool { return false }
