package filter

import "fmt"

// Filter is one stage of a Chain: it either drops a record or returns the
// (possibly unchanged) record to pass through.
type Filter interface {
	// Apply returns the record to keep (drop=false) or reports drop=true
	// to discard it. The returned record need not be the same Go value
	// passed in.
	Apply(record any) (result any, drop bool, err error)
}

// ExprFilter drops records matching a parsed boolean expression.
type ExprFilter struct {
	Expr Expr
}

func (f ExprFilter) Apply(record any) (any, bool, error) {
	drop, err := Eval(f.Expr, record)
	if err != nil {
		return nil, false, err
	}
	return record, drop, nil
}

// UnsetFilter nulls out the named fields on every record it sees.
type UnsetFilter struct {
	Fields []string
}

func (f UnsetFilter) Apply(record any) (any, bool, error) {
	m, err := UnsetFields(record, f.Fields)
	if err != nil {
		return nil, false, err
	}
	return m, false, nil
}

// Chain applies filters in declaration order (spec.md §4.5): the first
// filter to drop a record short-circuits the rest; otherwise the chain
// reports whether any stage actually changed the record (by deep value,
// not Go identity).
type Chain struct {
	filters []Filter
}

// NewChain builds a Chain from filters in application order.
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Result is the outcome of running one record through a Chain.
type Result struct {
	Record   any
	Dropped  bool
	Modified bool
}

// AsFilter lets a Chain nest inside another Chain as a single Filter
// stage, collapsing its own Dropped/Modified outcome into the Apply
// contract (used to prove chain([a, chain([b, c])]) ≡ chain([a, b, c])).
func (c *Chain) AsFilter() Filter { return chainFilter{c} }

type chainFilter struct{ chain *Chain }

func (f chainFilter) Apply(record any) (any, bool, error) {
	res, err := f.chain.Apply(record)
	if err != nil {
		return nil, false, err
	}
	return res.Record, res.Dropped, nil
}

// NewChainAsFilter builds a Chain from filters and exposes it as a single
// Filter stage, for nesting a sub-chain inside another Chain.
func NewChainAsFilter(filters ...Filter) Filter {
	return NewChain(filters...).AsFilter()
}

// Apply runs record through every filter in order.
func (c *Chain) Apply(record any) (Result, error) {
	current := record
	modified := false

	for i, f := range c.filters {
		next, drop, err := f.Apply(current)
		if err != nil {
			return Result{}, fmt.Errorf("filter stage %d: %w", i, err)
		}
		if drop {
			return Result{Record: current, Dropped: true}, nil
		}
		eq, err := Equal(current, next)
		if err != nil {
			return Result{}, fmt.Errorf("filter stage %d: %w", i, err)
		}
		if !eq {
			modified = true
		}
		current = next
	}

	return Result{Record: current, Modified: modified}, nil
}
