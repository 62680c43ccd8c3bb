package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGrid(t *testing.T) {
	g := NewGrid(t, 2, 2, map[string]string{"a1": "1", "B2": "A1 + 1"})

	assert.Equal(t, "1", g.Expression("A1"))
	assert.Equal(t, "A1 + 1", g.Expression("B2"))
	assert.Equal(t, "", g.Expression("B1"))
}

func TestDisplaysAndErrored(t *testing.T) {
	g := NewGrid(t, 1, 3, nil)
	a, _ := g.Cell("A1")
	a.Display = "5"
	b, _ := g.Cell("B1")
	b.Display = ""
	b.HasError = true

	assert.Equal(t, map[string]string{"A1": "5", "B1": ""}, Displays(g))
	assert.Equal(t, []string{"B1"}, Errored(g))
}
