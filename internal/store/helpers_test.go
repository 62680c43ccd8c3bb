package store

import (
	"path/filepath"
	"testing"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// createTestStore opens a fresh store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestGrid builds a grid with the given expressions.
func createTestGrid(t *testing.T, rows, cols int, cells map[string]string) *sheet.Grid {
	t.Helper()
	g, err := sheet.New(rows, cols)
	if err != nil {
		t.Fatalf("sheet.New() failed: %v", err)
	}
	for addr, expr := range cells {
		if err := g.SetExpression(sheet.Address(addr), expr); err != nil {
			t.Fatalf("SetExpression(%s) failed: %v", addr, err)
		}
	}
	return g
}
