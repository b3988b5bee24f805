package filter

import (
	"encoding/json"
	"fmt"
)

// toMap renders any record through its JSON tags into a generic map, the
// same representation the JSON/JSON-Lines sinks serialize, so field access
// here and there stay consistent.
func toMap(record any) (map[string]any, error) {
	b, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// navigate walks a dot path through a decoded JSON object, returning the
// leaf value and whether the path resolved to anything (including an
// explicit JSON null, which callers treat as absent per spec.md §4.5).
func navigate(m map[string]any, path []string) (any, bool) {
	var cur any = m
	for _, part := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := obj[part]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

func isAbsent(v any, found bool) bool {
	return !found || v == nil
}

// Eval reports whether expr matches record — "matches" means "drop this
// record" per spec.md §4.5.
func Eval(expr Expr, record any) (bool, error) {
	m, err := toMap(record)
	if err != nil {
		return false, fmt.Errorf("filter: could not inspect record: %w", err)
	}
	return evalExpr(expr, m), nil
}

func evalExpr(expr Expr, m map[string]any) bool {
	switch e := expr.(type) {
	case And:
		return evalExpr(e.Left, m) && evalExpr(e.Right, m)
	case Or:
		return evalExpr(e.Left, m) || evalExpr(e.Right, m)
	case Cmp:
		return evalCmp(e, m)
	default:
		return false
	}
}

func evalCmp(c Cmp, m map[string]any) bool {
	left, found := navigate(m, c.Field)
	absent := isAbsent(left, found)

	if c.Value.Kind == ValNull {
		switch c.Op {
		case OpEq:
			return absent
		case OpNe:
			return !absent
		default:
			// Null-vs-value ordering comparisons evaluate false.
			return false
		}
	}

	if absent {
		// A present-vs-absent comparison other than ==/!= null never
		// matches; absent also never matches == or != against a non-null
		// literal.
		return false
	}

	return compare(left, c.Op, c.Value)
}

// compare implements the string-coercion rule ("if the left side is not a
// string but the right side is, the left side is coerced to its string
// form") and catches any type-mismatch during ordering comparisons,
// returning false (keep the record) rather than propagating an error
// (spec.md §4.5).
func compare(left any, op Op, right Value) bool {
	if right.Kind == ValString {
		if _, ok := left.(string); !ok {
			left = stringify(left)
		}
	}

	switch lv := left.(type) {
	case string:
		if right.Kind != ValString {
			return false
		}
		return compareOrdered(lv, right.Str, op)
	case float64:
		if right.Kind != ValNumber {
			return false
		}
		return compareOrdered(lv, right.Num, op)
	case bool:
		if right.Kind != ValBool {
			return false
		}
		if op == OpEq {
			return lv == right.Bool
		}
		if op == OpNe {
			return lv != right.Bool
		}
		return false
	default:
		return false
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%v", t)
	case bool:
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

type ordered interface{ ~string | ~float64 }

func compareOrdered[T ordered](left, right T, op Op) bool {
	switch op {
	case OpEq:
		return left == right
	case OpNe:
		return left != right
	case OpGt:
		return left > right
	case OpGe:
		return left >= right
	case OpLt:
		return left < right
	case OpLe:
		return left <= right
	default:
		return false
	}
}
