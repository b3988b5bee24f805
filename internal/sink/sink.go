// Package sink implements C6, the file-sink family: a small closed set of
// writer variants sharing an open/write/close contract, grounded on the
// teacher's preference for explicit tagged-union-style dispatch over an
// open plugin protocol (spec.md §9 "Sink heterogeneity" design note — the
// teacher has no direct analogue since waugzee only ever writes to its
// database, but its repositories share exactly this open/write/close
// shape, e.g. internal/repositories/repository.go).
package sink

// Sink accepts records of a single run and releases its resource on Close
// regardless of whether writing succeeded.
type Sink interface {
	// Open prepares the sink to receive records for one input (file
	// sinks) or for the whole run (aggregating sinks).
	Open() error
	// Write emits one record.
	Write(record any) error
	// Close flushes and releases the sink's resource. Close must be safe
	// to call even if Open or Write returned an error.
	Close() error
	// AggregatesInputs reports whether one Sink instance is reused across
	// every input file (true) or opened once per input file (false),
	// spec.md §4.6.
	AggregatesInputs() bool
}

// Compression names a sink's output compression layer.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gz"
	CompressionBzip Compression = "bz2"
)

// Extension returns the filename suffix a compression adds, empty for
// CompressionNone.
func (c Compression) Extension() string {
	if c == CompressionNone {
		return ""
	}
	return "." + string(c)
}
