package sheet

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDimensions indicates a grid with fewer than one row or column.
	ErrInvalidDimensions = errors.New("grid dimensions must be at least 1x1")

	// ErrUnknownCell indicates an address outside the grid rectangle.
	ErrUnknownCell = errors.New("unknown cell")
)

// Cell is one grid position.
//
// Expression is raw user input and is owned by the editing caller. Display and
// HasError are written only by the recalculation engine.
type Cell struct {
	addr Address

	Expression string
	Display    string
	HasError   bool
}

// Address returns the cell's canonical address. It never changes.
func (c *Cell) Address() Address {
	return c.addr
}

// IsEmpty reports whether the expression is blank after trimming whitespace.
func (c *Cell) IsEmpty() bool {
	return strings.TrimSpace(c.Expression) == ""
}

// Grid is an address-keyed rectangle of cells.
//
// INVARIANT: for every r in [1, rows] and c in [1, cols] the mapping holds
// exactly one Cell at FormatAddress(c, r), and nothing else.
type Grid struct {
	rows  int
	cols  int
	cells map[Address]*Cell
}

// New creates a rows × cols grid of empty cells.
func New(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make(map[Address]*Cell, rows*cols),
	}
	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			addr := FormatAddress(c, r)
			g.cells[addr] = &Cell{addr: addr}
		}
	}
	return g, nil
}

// MustNew is like New but panics on invalid dimensions.
// Use only in tests or with constant dimensions.
func MustNew(rows, cols int) *Grid {
	g, err := New(rows, cols)
	if err != nil {
		panic(err)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Cell looks up a cell. The address is canonicalized first, so "a1" finds A1.
func (g *Grid) Cell(addr Address) (*Cell, bool) {
	c, ok := g.cells[Canonical(string(addr))]
	return c, ok
}

// Contains reports whether the address lies inside the grid.
func (g *Grid) Contains(addr Address) bool {
	_, ok := g.Cell(addr)
	return ok
}

// Addresses returns every address in row-major order.
func (g *Grid) Addresses() []Address {
	out := make([]Address, 0, len(g.cells))
	for r := 1; r <= g.rows; r++ {
		for c := 1; c <= g.cols; c++ {
			out = append(out, FormatAddress(c, r))
		}
	}
	return out
}

// SetExpression replaces the raw expression of a cell.
// Display state is left untouched until the next recalculation.
func (g *Grid) SetExpression(addr Address, expr string) error {
	c, ok := g.Cell(addr)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCell, addr)
	}
	c.Expression = expr
	return nil
}

// Expression returns the raw expression at addr, or "" if addr is outside the grid.
func (g *Grid) Expression(addr Address) string {
	if c, ok := g.Cell(addr); ok {
		return c.Expression
	}
	return ""
}

// Display returns the last computed display text at addr, or "" if addr is
// outside the grid.
func (g *Grid) Display(addr Address) string {
	if c, ok := g.Cell(addr); ok {
		return c.Display
	}
	return ""
}

// HasError reports the error flag at addr. Unknown addresses report false.
func (g *Grid) HasError(addr Address) bool {
	if c, ok := g.Cell(addr); ok {
		return c.HasError
	}
	return false
}

// Expressions returns the non-empty expressions keyed by address.
func (g *Grid) Expressions() map[Address]string {
	out := make(map[Address]string)
	for addr, c := range g.cells {
		if !c.IsEmpty() {
			out[addr] = c.Expression
		}
	}
	return out
}

// CopyFrom copies expressions from old into g for every address both grids
// share. Cells of old outside g are dropped.
func (g *Grid) CopyFrom(old *Grid) {
	for addr, oc := range old.cells {
		if nc, ok := g.cells[addr]; ok {
			nc.Expression = oc.Expression
		}
	}
}

// Resize returns a new rows × cols grid carrying forward the expressions of
// every surviving address. The receiver is not modified. Display state of the
// new grid is empty until recalculated.
func (g *Grid) Resize(rows, cols int) (*Grid, error) {
	ng, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	ng.CopyFrom(g)
	return ng, nil
}
