package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Mykola-Oleh/CellCalculator/internal/engine"
	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// CellView is one cell in command output.
type CellView struct {
	Address    string `json:"address"`
	Expression string `json:"expression,omitempty"`
	Display    string `json:"display"`
	Error      bool   `json:"error"`
}

// SheetView is a recalculated sheet in command output.
type SheetView struct {
	PassID     string     `json:"pass_id"`
	Seq        int64      `json:"seq"`
	Rows       int        `json:"rows"`
	Cols       int        `json:"cols"`
	Cycle      []string   `json:"cycle,omitempty"`
	Unresolved []string   `json:"unresolved,omitempty"`
	Evaluated  int        `json:"evaluated"`
	Errors     int        `json:"errors"`
	Cells      []CellView `json:"cells"`
}

// newSheetView collects every cell that has an expression, a display, or an
// error, in row-major order.
func newSheetView(g *sheet.Grid, r *engine.Report) SheetView {
	v := SheetView{
		PassID:     r.PassID,
		Seq:        r.Seq,
		Rows:       g.Rows(),
		Cols:       g.Cols(),
		Cycle:      addressStrings(r.Cycle),
		Unresolved: addressStrings(r.Unresolved),
		Evaluated:  r.Evaluated,
		Errors:     r.Errors,
		Cells:      []CellView{},
	}
	for _, addr := range g.Addresses() {
		c, _ := g.Cell(addr)
		if c.IsEmpty() && c.Display == "" && !c.HasError {
			continue
		}
		v.Cells = append(v.Cells, cellView(c))
	}
	return v
}

func cellView(c *sheet.Cell) CellView {
	return CellView{
		Address:    string(c.Address()),
		Expression: c.Expression,
		Display:    c.Display,
		Error:      c.HasError,
	}
}

func addressStrings(addrs []sheet.Address) []string {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = string(a)
	}
	return out
}

// renderGrid writes the display text of g as a table. Errored cells are
// prefixed with "!".
func renderGrid(w io.Writer, g *sheet.Grid) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := make([]string, 0, g.Cols()+1)
	header = append(header, "")
	for col := 1; col <= g.Cols(); col++ {
		header = append(header, sheet.ColumnName(col))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for row := 1; row <= g.Rows(); row++ {
		line := make([]string, 0, g.Cols()+1)
		line = append(line, fmt.Sprint(row))
		for col := 1; col <= g.Cols(); col++ {
			addr := sheet.FormatAddress(col, row)
			text := g.Display(addr)
			if g.HasError(addr) {
				text = "!" + text
			}
			line = append(line, text)
		}
		fmt.Fprintln(tw, strings.Join(line, "\t"))
	}
	return tw.Flush()
}

// renderSummary writes the pass line printed under a rendered grid.
func renderSummary(w io.Writer, r *engine.Report) {
	fmt.Fprintf(w, "\npass %d (%s): %d evaluated, %d errors\n", r.Seq, r.PassID, r.Evaluated, r.Errors)
	if err := r.CycleErr(); err != nil {
		fmt.Fprintln(w, err.Error())
	}
}
