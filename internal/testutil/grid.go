package testutil

import (
	"testing"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
	"github.com/stretchr/testify/require"
)

// NewGrid builds a rows × cols grid with the given expressions.
// Fails the test if any address lies outside the grid.
func NewGrid(t testing.TB, rows, cols int, cells map[string]string) *sheet.Grid {
	t.Helper()

	g, err := sheet.New(rows, cols)
	require.NoError(t, err)
	for addr, expr := range cells {
		require.NoError(t, g.SetExpression(sheet.Address(addr), expr), "cell %s", addr)
	}
	return g
}

// Displays returns the display text of every cell whose display is non-empty
// or whose error flag is set.
func Displays(g *sheet.Grid) map[string]string {
	out := make(map[string]string)
	for _, addr := range g.Addresses() {
		if d := g.Display(addr); d != "" || g.HasError(addr) {
			out[string(addr)] = d
		}
	}
	return out
}

// Errored returns the addresses whose error flag is set, row-major.
func Errored(g *sheet.Grid) []string {
	var out []string
	for _, addr := range g.Addresses() {
		if g.HasError(addr) {
			out = append(out, string(addr))
		}
	}
	return out
}
