package records

import "fmt"

// ParseError is the per-element parse failure the driver catches and turns
// into an "unhandled" warning (or a fatal error under fail-on-unhandled),
// spec.md §4.4 and §7.
type ParseError struct {
	Entity Kind
	ID     string // best-effort identifier, may be empty
	Reason string
}

func (e *ParseError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s id=%s: %s", e.Entity, e.ID, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
}

func missingID(kind Kind) error {
	return &ParseError{Entity: kind, Reason: "missing or empty id"}
}

func badInt(kind Kind, id, field, value string) error {
	return &ParseError{Entity: kind, ID: id, Reason: fmt.Sprintf("invalid integer in %s: %q", field, value)}
}
