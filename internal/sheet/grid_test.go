package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CellPerAddress(t *testing.T) {
	g, err := New(3, 4)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, 12, g.Len())

	for r := 1; r <= 3; r++ {
		for c := 1; c <= 4; c++ {
			addr := FormatAddress(c, r)
			cell, ok := g.Cell(addr)
			require.True(t, ok, "missing %s", addr)
			assert.Equal(t, addr, cell.Address())
			assert.Empty(t, cell.Expression)
			assert.Empty(t, cell.Display)
			assert.False(t, cell.HasError)
		}
	}
	assert.False(t, g.Contains("E1"))
	assert.False(t, g.Contains("A4"))
}

func TestNew_InvalidDimensions(t *testing.T) {
	_, err := New(0, 5)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	_, err = New(5, -1)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	assert.Panics(t, func() { MustNew(0, 0) })
}

func TestAddresses_RowMajor(t *testing.T) {
	g := MustNew(2, 2)
	assert.Equal(t, []Address{"A1", "B1", "A2", "B2"}, g.Addresses())
}

func TestSetExpression(t *testing.T) {
	g := MustNew(2, 2)

	require.NoError(t, g.SetExpression("b2", "1 + 1"))
	assert.Equal(t, "1 + 1", g.Expression("B2"))

	err := g.SetExpression("C1", "5")
	assert.ErrorIs(t, err, ErrUnknownCell)
}

func TestQueries_UnknownAddress(t *testing.T) {
	g := MustNew(1, 1)
	assert.Equal(t, "", g.Display("Q99"))
	assert.Equal(t, "", g.Expression("Q99"))
	assert.False(t, g.HasError("Q99"))
}

func TestExpressions_SkipsBlank(t *testing.T) {
	g := MustNew(2, 2)
	require.NoError(t, g.SetExpression("A1", "1"))
	require.NoError(t, g.SetExpression("B1", "   "))

	assert.Equal(t, map[Address]string{"A1": "1"}, g.Expressions())
}

func TestResize_CopiesForward(t *testing.T) {
	g := MustNew(3, 3)
	require.NoError(t, g.SetExpression("A1", "1"))
	require.NoError(t, g.SetExpression("C3", "A1 + 1"))
	cell, _ := g.Cell("A1")
	cell.Display = "1"

	smaller, err := g.Resize(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, smaller.Len())
	assert.Equal(t, "1", smaller.Expression("A1"))
	assert.Equal(t, "", smaller.Display("A1"), "display state is not carried over")
	assert.False(t, smaller.Contains("C3"))

	larger, err := g.Resize(4, 5)
	require.NoError(t, err)
	assert.Equal(t, 20, larger.Len())
	assert.Equal(t, "A1 + 1", larger.Expression("C3"))

	// Receiver untouched.
	assert.Equal(t, 9, g.Len())

	_, err = g.Resize(0, 1)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}
