package records

import "strconv"

func strPtr(s string, present bool) *string {
	if !present {
		return nil
	}
	return &s
}

func uintPtr(s string, present bool) (*uint64, error) {
	if !present || s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseOptInt implements the "parse lazily and fail soft" integer rule:
// absent or empty becomes nil, present-but-invalid propagates an error
// (spec.md §4.4).
func parseOptInt(s string, present bool) (*int, error) {
	if !present || s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func boolTrue(s string, present bool) *bool {
	if !present {
		return nil
	}
	v := s == "true"
	return &v
}

// requiredUint64 parses a required id field; missing or empty is reported
// by the caller via missingID, not here, so the caller can attach its
// best-effort identifier before this field is known.
func requiredUint64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
