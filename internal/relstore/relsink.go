package relstore

import (
	"context"
	"reflect"
	"strings"
)

// RelSink adapts a Store to the sink.Write(record any) error contract
// (internal/sink.Sink), deriving the table name from each record's Go
// type name, lower-cased (spec.md §4.7 point 1). It aggregates inputs:
// one Store serves every input file in the run.
type RelSink struct {
	store *Store
	ctx   context.Context
}

// NewRelSink wraps store for use as a sink.Sink. ctx bounds every
// database operation issued through the sink (spec.md §5: the process is
// the cancellation unit, so callers typically pass context.Background()
// or a run-scoped context tied to CLI interrupt handling).
func NewRelSink(ctx context.Context, store *Store) *RelSink {
	return &RelSink{store: store, ctx: ctx}
}

func (s *RelSink) Open() error { return nil }

func (s *RelSink) Write(record any) error {
	table := tableNameOf(record)
	return s.store.Write(s.ctx, table, record)
}

func (s *RelSink) Close() error {
	return s.store.Close(s.ctx)
}

func (s *RelSink) AggregatesInputs() bool { return true }

// MarkClean forwards to the underlying Store so the pipeline driver can
// report a clean run before Close (e.g. index creation should only run
// once nothing failed).
func (s *RelSink) MarkClean() { s.store.MarkClean() }

func tableNameOf(record any) string {
	t := reflect.TypeOf(record)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}
