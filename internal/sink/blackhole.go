package sink

// Blackhole discards every record; only upstream counters change
// (spec.md §4.6). It aggregates inputs: one instance serves the whole run.
type Blackhole struct{}

func (Blackhole) Open() error          { return nil }
func (Blackhole) Write(record any) error { return nil }
func (Blackhole) Close() error         { return nil }
func (Blackhole) AggregatesInputs() bool { return true }
