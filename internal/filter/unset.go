package filter

import "encoding/json"

// UnsetFields returns a copy of record with each named top-level field set
// to null (via its generic JSON map representation); unknown field names
// are silently ignored and an empty set is a pass-through (spec.md §4.5).
// The result is a map[string]any rather than the original struct type,
// since the original struct can't represent a field forced to null
// independent of its Go type — sinks already consume this representation
// for serialization.
func UnsetFields(record any, fields []string) (map[string]any, error) {
	m, err := toMap(record)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return m, nil
	}
	for _, f := range fields {
		if _, ok := m[f]; ok {
			m[f] = nil
		}
	}
	return m, nil
}

// Equal reports whether two JSON-representable records are structurally
// equal, used by the filter chain to decide whether a filter's output
// counts as a "modified" record. §9's Open Question (b) leaves this
// unspecified; this implementation treats a deep-equal copy as a no-op
// (not modified) rather than counting every new object returned by a
// filter, however equal, as a change — see DESIGN.md.
func Equal(a, b any) (bool, error) {
	aj, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	bj, err := json.Marshal(b)
	if err != nil {
		return false, err
	}
	return string(aj) == string(bj), nil
}
