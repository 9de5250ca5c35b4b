package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestOperationsSetAndClear(t *testing.T) {
	var op Operations

	assert.Equal(t, op, Operations(0))
	assert.False(t, op.IsSupported(Filter))

	op.Set(Filter | Sort)
	assert.True(t, op.IsSupported(Filter))
	assert.True(t, op.IsSupported(Sort))

	op.Clear(Filter)
	assert.False(t, op.IsSupported(Filter))
	assert.True(t, op.IsSupported(Sort))
}

func TestOperationsAdd(t *testing.T) {
	var op Operations
	assert.Equal(t, op, Operations(0))

	require.NoError(t, op.Add("Filter", "Sort", "Paginate", "Count"))
	assert.True(t, op.IsSupported(Filter))
	assert.True(t, op.IsSupported(Sort))
	assert.True(t, op.IsSupported(Paginate))
	assert.True(t, op.IsSupported(Count))

	assert.Error(t, op.Add("TableCreate"))
}

func TestOps(t *testing.T) {
	op, err := Ops()
	require.NoError(t, err)
	assert.Equal(t, AllOperations, op)

	op, err = Ops("Paginate")
	require.NoError(t, err)
	assert.True(t, op.IsSupported(Paginate))
	assert.False(t, op.IsSupported(Filter))
}
