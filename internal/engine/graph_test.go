package engine

import (
	"testing"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
	"github.com/Mykola-Oleh/CellCalculator/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestExtractRefs(t *testing.T) {
	tests := []struct {
		expr string
		want []sheet.Address
	}{
		{"a1+B22*foo(C3)", []sheet.Address{"A1", "B22", "C3"}},
		{"10 / / 5", []sheet.Address{}},
		{"A1 + A1", []sheet.Address{"A1", "A1"}},
		{"inc(", []sheet.Address{}},
		{"A0 + ZZ9", []sheet.Address{"A0", "ZZ9"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRefs(tt.expr))
		})
	}
}

func TestBuildGraph_KeepsOnlyExistingCells(t *testing.T) {
	g := testutil.NewGrid(t, 2, 2, map[string]string{
		"A1": "Z99 + b1 + A1 + B1",
		"B2": "A1",
	})

	graph := BuildGraph(g)

	assert.Equal(t, []sheet.Address{"A1", "B1", "A2", "B2"}, graph.Nodes())
	assert.Equal(t, []sheet.Address{"A1", "B1"}, graph.DependsOn("A1"))
	assert.Equal(t, []sheet.Address{"A1"}, graph.DependsOn("B2"))
	assert.Empty(t, graph.DependsOn("B1"))
	assert.Equal(t, 3, graph.EdgeCount())
}

func TestBuildGraph_MalformedExpressionStillScanned(t *testing.T) {
	g := testutil.NewGrid(t, 1, 2, map[string]string{
		"A1": "B1 + + (",
	})

	assert.Equal(t, []sheet.Address{"B1"}, BuildGraph(g).DependsOn("A1"))
}

func TestNewGraph_SortsAndDedupes(t *testing.T) {
	graph := NewGraph(map[sheet.Address][]sheet.Address{
		"B1": {"A2", "A1", "A2", "Q7"},
		"A1": nil,
		"A2": nil,
	})

	assert.Equal(t, []sheet.Address{"A1", "B1", "A2"}, graph.Nodes())
	assert.Equal(t, []sheet.Address{"A1", "A2"}, graph.DependsOn("B1"))
}
