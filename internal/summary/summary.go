// Package summary implements C9: monotonic run counters, a warnings list,
// and elapsed-time measurement, plus a fixed human-readable render — the
// metrics block a run prints whether or not anything went wrong (spec.md
// §4.9). Grounded on the teacher's progress-broadcast counters in
// ProcessXMLEntities (internal/services/discogsXMLParser.service.go),
// generalized from an in-band channel payload into a collector the
// pipeline driver owns directly.
package summary

import (
	"fmt"
	"io"
	"time"
)

// Summary collects run-wide counters and warnings. The zero value is
// ready to use; call Start before a run and Stop (or defer it) when done.
type Summary struct {
	Read       uint64
	Dropped    uint64
	Modified   uint64
	Written    uint64
	Unhandled  uint64
	Warnings   []string

	start time.Time
	elapsed time.Duration
}

// Start begins the elapsed-time clock; it is a scoped resource in the
// sense that Stop must be called once, typically via defer, to capture
// the duration regardless of how the run ends (spec.md §4.9, §5 "Release
// discipline").
func (s *Summary) Start() { s.start = time.Now() }

// Stop freezes Elapsed at the time since Start.
func (s *Summary) Stop() { s.elapsed = time.Since(s.start) }

// Elapsed returns the duration between Start and Stop.
func (s *Summary) Elapsed() time.Duration { return s.elapsed }

func (s *Summary) IncRead()            { s.Read++ }
func (s *Summary) IncDropped()         { s.Dropped++ }
func (s *Summary) IncModified()        { s.Modified++ }
func (s *Summary) IncWritten()         { s.Written++ }
func (s *Summary) IncUnhandled()       { s.Unhandled++ }

// Warn appends a warning, e.g. "Unhandled in artist id=1: unknown_field".
func (s *Summary) Warn(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

// Merge folds another Summary's counters, warnings, and elapsed time into
// s, used by the CLI when a non-aggregating sink (spec.md §4.6) forces one
// pipeline.Driver.Run call per input file and the per-file snapshots need
// combining into one reported total.
func (s *Summary) Merge(other *Summary) {
	if other == nil {
		return
	}
	s.Read += other.Read
	s.Dropped += other.Dropped
	s.Modified += other.Modified
	s.Written += other.Written
	s.Unhandled += other.Unhandled
	s.Warnings = append(s.Warnings, other.Warnings...)
	s.elapsed += other.elapsed
}

// Display renders the fixed human-readable block spec.md §4.9 calls for.
func (s *Summary) Display(w io.Writer) {
	fmt.Fprintf(w, "records read:      %d\n", s.Read)
	fmt.Fprintf(w, "records dropped:   %d\n", s.Dropped)
	fmt.Fprintf(w, "records modified:  %d\n", s.Modified)
	fmt.Fprintf(w, "records written:   %d\n", s.Written)
	fmt.Fprintf(w, "records unhandled: %d\n", s.Unhandled)
	fmt.Fprintf(w, "elapsed:           %s\n", s.elapsed.Round(time.Millisecond))
	if len(s.Warnings) > 0 {
		fmt.Fprintf(w, "warnings:\n")
		for _, warning := range s.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
}
