package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperator(t *testing.T) {
	items := []struct {
		text     string
		expected Operator
	}{
		{"EQ", OpEq},
		{"=", OpEq},
		{"neq", OpNotEq},
		{"<>", OpNotEq},
		{"GE", OpGte},
		{">", OpGt},
		{"le", OpLte},
		{"<", OpLt},
		{"CONTAINS", OpContains},
		{" like ", OpContains},
		{"NOT_CONTAINS", OpNotContains},
	}

	for _, item := range items {
		op, err := ParseOperator(item.text)
		require.NoError(t, err, item.text)
		assert.Equal(t, item.expected, op, item.text)
	}

	_, err := ParseOperator("between")
	assert.True(t, errors.Is(err, ErrUnknownOperator))
}

func TestOperatorText(t *testing.T) {
	for _, op := range Operators {
		text, err := op.MarshalText()
		require.NoError(t, err)

		var parsed Operator
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, op, parsed)
	}

	assert.False(t, Operator(42).Valid())
	assert.Equal(t, "Operator(42)", Operator(42).String())
	_, err := Operator(42).MarshalText()
	assert.Error(t, err)
	assert.True(t, OpNotContains.IsLike())
	assert.False(t, OpEq.IsLike())
}

func TestParseDirection(t *testing.T) {
	items := []struct {
		text     string
		expected Direction
		ok       bool
	}{
		{"", Asc, true},
		{"asc", Asc, true},
		{"Desc", Desc, true},
		{"up", "", false},
	}

	for _, item := range items {
		direction, ok := ParseDirection(item.text)
		assert.Equal(t, item.ok, ok, item.text)
		assert.Equal(t, item.expected, direction, item.text)
	}
}

func TestColumnQualified(t *testing.T) {
	assert.Equal(t, "i.title", Column{Name: "title", Alias: "i"}.Qualified())
	assert.Equal(t, "title", Column{Name: "title"}.Qualified())

	column, ok := FindColumn([]Column{{Name: "id"}, {Name: "title", Alias: "i"}}, "title")
	assert.True(t, ok)
	assert.Equal(t, "i", column.Alias)
	_, ok = FindColumn(nil, "title")
	assert.False(t, ok)
}

func TestActiveFilters(t *testing.T) {
	filters := []Filter{{Name: "a", Active: true}, {Name: "b"}, {Name: "c", Active: true}}
	active := ActiveFilters(filters)
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].Name)
	assert.Equal(t, "c", active[1].Name)

	assert.Equal(t, And, Filter{}.Join())
	assert.Equal(t, Or, Filter{Connective: Or}.Join())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Pagination{PageIndex: 0, PageSize: 10}))
	assert.NoError(t, Validate(Sort{Column: "title", Direction: Desc}))

	err := Validate(Pagination{PageIndex: -1, PageSize: 0})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Message, "PageIndex")
	assert.Contains(t, validationErr.Message, "PageSize")

	assert.Error(t, Validate(Sort{Column: "title", Direction: "SIDEWAYS"}))

	filter := Filter{Name: "title", Operator: Operator(42), Columns: []Column{{Name: "title"}}}
	err = Validate(filter)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a valid filter operator")

	filter.Operator = OpEq
	assert.NoError(t, Validate(filter))
}
