package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestNewBoxTable(t *testing.T) {
	table, err := NewBoxTable([]float32{0, 0, 15, 15, -8, -8, 23, 23})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, []int(table.Shape()))

	_, err = NewBoxTable([]float32{1, 2, 3})
	assert.Error(t, err)
}

func TestVStack(t *testing.T) {
	a, err := NewBoxTable([]float32{0, 0, 15, 15})
	require.NoError(t, err)
	b, err := NewBoxTable([]float32{1, 1, 2, 2, 3, 3, 4, 4})
	require.NoError(t, err)

	stacked, err := VStack([]*tensor.Dense{a, nil, b})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, []int(stacked.Shape()))
	assert.Equal(t, []float32{0, 0, 15, 15, 1, 1, 2, 2, 3, 3, 4, 4}, stacked.Float32s())
}

func TestVStack_SingleIsCopy(t *testing.T) {
	a, err := NewBoxTable([]float32{0, 0, 15, 15})
	require.NoError(t, err)

	stacked, err := VStack([]*tensor.Dense{a})
	require.NoError(t, err)
	stacked.Float32s()[0] = 42
	assert.Equal(t, float32(0), a.Float32s()[0])
}

func TestVStack_Errors(t *testing.T) {
	_, err := VStack(nil)
	assert.Error(t, err)

	flat := tensor.New(tensor.Of(tensor.Float32), tensor.WithShape(4), tensor.WithBacking([]float32{0, 0, 1, 1}))
	_, err = VStack([]*tensor.Dense{flat})
	assert.Error(t, err)
}

func TestRows(t *testing.T) {
	table, err := NewBoxTable([]float32{0, 0, 15, 15, -8, -8, 23, 23})
	require.NoError(t, err)

	rows, err := Rows(table)
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0, 0, 15, 15}, {-8, -8, 23, 23}}, rows)

	_, err = Row(table, 2)
	assert.Error(t, err)
	_, err = Row(table, -1)
	assert.Error(t, err)
}

func TestPointers(t *testing.T) {
	p := RefPointer(true)
	assert.True(t, *p)
	assert.True(t, DerefPointer(p))

	var nilPtr *bool
	assert.False(t, DerefPointer(nilPtr))
}
