package sink

import (
	"encoding/json"
	"fmt"
	"io"
)

// Console pretty-prints each record to the given writer (normally
// os.Stdout), one indented JSON object per record. It aggregates inputs.
type Console struct {
	Writer io.Writer
}

func (c Console) Open() error { return nil }

func (c Console) Write(record any) error {
	b, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("console sink: %w", err)
	}
	_, err = fmt.Fprintln(c.Writer, string(b))
	return err
}

func (c Console) Close() error           { return nil }
func (c Console) AggregatesInputs() bool { return true }
