package sink

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONLinesSink writes one JSON object per line. It does not aggregate
// inputs.
type JSONLinesSink struct {
	Path        string
	Compression Compression
	Overwrite   bool

	w io.WriteCloser
}

func (s *JSONLinesSink) Open() error {
	w, err := openCompressed(s.Path, s.Compression, s.Overwrite)
	if err != nil {
		return err
	}
	s.w = w
	return nil
}

func (s *JSONLinesSink) Write(record any) error {
	b, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("jsonlines sink: %w", err)
	}
	if _, err := s.w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("jsonlines sink: %w", err)
	}
	return nil
}

func (s *JSONLinesSink) Close() error {
	if s.w == nil {
		return nil
	}
	return s.w.Close()
}

func (s *JSONLinesSink) AggregatesInputs() bool { return false }
