package filter_test

import (
	"testing"

	"dgkit/internal/filter"

	"github.com/stretchr/testify/require"
)

type sample struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Parent *string `json:"parent"`
}

func TestParseAndEvalSimpleEquality(t *testing.T) {
	expr, err := filter.Parse("id == 1")
	require.NoError(t, err)

	drop, err := filter.Eval(expr, sample{ID: 1, Name: "a"})
	require.NoError(t, err)
	require.True(t, drop)

	drop, err = filter.Eval(expr, sample{ID: 2, Name: "a"})
	require.NoError(t, err)
	require.False(t, drop)
}

func TestEvalAndOrPrecedenceAndParens(t *testing.T) {
	expr, err := filter.Parse("id == 1 and name == 'a' or id == 2")
	require.NoError(t, err)

	drop, _ := filter.Eval(expr, sample{ID: 2, Name: "z"})
	require.True(t, drop)

	drop, _ = filter.Eval(expr, sample{ID: 1, Name: "a"})
	require.True(t, drop)

	drop, _ = filter.Eval(expr, sample{ID: 1, Name: "z"})
	require.False(t, drop)

	grouped, err := filter.Parse("id == 1 and (name == 'a' or id == 2)")
	require.NoError(t, err)
	drop, _ = filter.Eval(grouped, sample{ID: 2, Name: "z"})
	require.False(t, drop)
}

func TestEvalNullComparisons(t *testing.T) {
	present := "x"

	eqNull, err := filter.Parse("parent == null")
	require.NoError(t, err)
	neNull, err := filter.Parse("parent != null")
	require.NoError(t, err)

	drop, _ := filter.Eval(eqNull, sample{Parent: nil})
	require.True(t, drop)
	drop, _ = filter.Eval(eqNull, sample{Parent: &present})
	require.False(t, drop)

	drop, _ = filter.Eval(neNull, sample{Parent: &present})
	require.True(t, drop)
	drop, _ = filter.Eval(neNull, sample{Parent: nil})
	require.False(t, drop)
}

func TestEvalOrderingAgainstNullIsFalse(t *testing.T) {
	expr, err := filter.Parse("id > null")
	require.NoError(t, err)
	drop, err := filter.Eval(expr, sample{ID: 5})
	require.NoError(t, err)
	require.False(t, drop)
}

func TestEvalStringCoercionOfLeftSide(t *testing.T) {
	expr, err := filter.Parse("id == '1'")
	require.NoError(t, err)
	drop, err := filter.Eval(expr, sample{ID: 1})
	require.NoError(t, err)
	require.True(t, drop)
}

func TestEvalTypeMismatchInOrderingIsFalse(t *testing.T) {
	expr, err := filter.Parse("name > 1")
	require.NoError(t, err)
	drop, err := filter.Eval(expr, sample{Name: "abc"})
	require.NoError(t, err)
	require.False(t, drop)
}

func TestUnsetFieldsNullsNamedFieldsAndIgnoresUnknown(t *testing.T) {
	m, err := filter.UnsetFields(sample{ID: 1, Name: "a"}, []string{"name", "nonexistent"})
	require.NoError(t, err)
	require.Nil(t, m["name"])
	require.EqualValues(t, 1, m["id"])
}

func TestUnsetFieldsIdempotent(t *testing.T) {
	once, err := filter.UnsetFields(sample{ID: 1, Name: "a"}, []string{"name"})
	require.NoError(t, err)
	twice, err := filter.UnsetFields(once, []string{"name"})
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestChainShortCircuitsOnDrop(t *testing.T) {
	expr, err := filter.Parse("id == 1")
	require.NoError(t, err)
	chain := filter.NewChain(
		filter.ExprFilter{Expr: expr},
		filter.UnsetFilter{Fields: []string{"name"}},
	)

	res, err := chain.Apply(sample{ID: 1, Name: "a"})
	require.NoError(t, err)
	require.True(t, res.Dropped)

	res, err = chain.Apply(sample{ID: 2, Name: "a"})
	require.NoError(t, err)
	require.False(t, res.Dropped)
	require.True(t, res.Modified)
}

func TestChainAssociativity(t *testing.T) {
	exprA, _ := filter.Parse("id == 99")
	fieldB := filter.UnsetFilter{Fields: []string{"name"}}
	fieldC := filter.UnsetFilter{Fields: []string{"parent"}}

	nested := filter.NewChain(filter.ExprFilter{Expr: exprA}, filter.NewChainAsFilter(fieldB, fieldC))
	flat := filter.NewChain(filter.ExprFilter{Expr: exprA}, fieldB, fieldC)

	rec := sample{ID: 1, Name: "a"}
	nestedRes, err := nested.Apply(rec)
	require.NoError(t, err)
	flatRes, err := flat.Apply(rec)
	require.NoError(t, err)

	require.Equal(t, flatRes.Dropped, nestedRes.Dropped)
	require.Equal(t, flatRes.Record, nestedRes.Record)
}
