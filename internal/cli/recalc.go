package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mykola-Oleh/CellCalculator/internal/document"
	"github.com/Mykola-Oleh/CellCalculator/internal/engine"
	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// RecalcOptions holds flags for the recalc command.
type RecalcOptions struct {
	*RootOptions
	Database string // record the pass here when set
	Name     string // sheet name in the database (default: file base name)
	Cell     string // print only this cell
	Rows     int    // resize before recalculating when > 0
	Cols     int
	Output   string // write the (possibly resized) sheet document here
}

// NewRecalcCommand creates the recalc command.
func NewRecalcCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecalcOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "recalc <sheet-file>",
		Short: "Recalculate a sheet document",
		Long: `Load a sheet document (.yaml, .json or .cue), recalculate every cell,
and print the resulting grid.

--rows and --cols resize the sheet first; expressions of surviving cells
are carried forward. With --db the sheet and its pass are recorded.

Exit codes:
  0 - Sheet recalculated (cells may still hold errors)
  2 - Command error (unreadable sheet, invalid flags, etc.)

Examples:
  cellcalc recalc budget.yaml
  cellcalc recalc budget.yaml --cell C3
  cellcalc recalc budget.yaml --rows 20 --cols 5 -o budget-20x5.yaml
  cellcalc recalc budget.yaml --db ./cellcalc.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecalc(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database")
	cmd.Flags().StringVar(&opts.Name, "name", "", "sheet name in the database (default: file base name)")
	cmd.Flags().StringVar(&opts.Cell, "cell", "", "print only this cell")
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "resize to this many rows")
	cmd.Flags().IntVar(&opts.Cols, "cols", 0, "resize to this many columns")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the sheet document to this path")

	return cmd
}

func runRecalc(opts *RecalcOptions, path string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	g, err := loadSheetFile(path)
	if err != nil {
		return err
	}

	if opts.Rows > 0 || opts.Cols > 0 {
		rows, cols := g.Rows(), g.Cols()
		if opts.Rows > 0 {
			rows = opts.Rows
		}
		if opts.Cols > 0 {
			cols = opts.Cols
		}
		formatter.VerboseLog("Resizing %dx%d -> %dx%d", g.Rows(), g.Cols(), rows, cols)
		if g, err = g.Resize(rows, cols); err != nil {
			_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid size", err)
		}
	}

	var report *engine.Report
	if opts.Database != "" {
		st, err := openStore(opts.Database)
		if err != nil {
			return err
		}
		defer st.Close()

		eng, err := newEngine(ctx, opts.RootOptions, cmd, st, engine.UUIDv7Generator{})
		if err != nil {
			return err
		}
		report = eng.Recalculate(g)

		name := opts.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		if err := recordPass(ctx, st, name, report, g); err != nil {
			return err
		}
		formatter.VerboseLog("Recorded pass %d as sheet %q", report.Seq, name)
	} else {
		eng, err := newEngine(ctx, opts.RootOptions, cmd, nil, engine.UUIDv7Generator{})
		if err != nil {
			return err
		}
		report = eng.Recalculate(g)
	}

	if opts.Output != "" {
		if err := document.Save(opts.Output, g); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to write sheet", err)
		}
		formatter.VerboseLog("Wrote %s", opts.Output)
	}

	return emitSheet(formatter, cmd, g, report, opts.Cell)
}

// emitSheet prints one cell when cell is set, otherwise the whole sheet.
func emitSheet(formatter *OutputFormatter, cmd *cobra.Command, g *sheet.Grid, r *engine.Report, cell string) error {
	if cell != "" {
		addr := sheet.Canonical(cell)
		c, ok := g.Cell(addr)
		if !ok {
			_ = formatter.Error(ErrCodeNotFound, "no such cell: "+cell, nil)
			return NewExitError(ExitCommandError, "no such cell: "+cell)
		}
		if formatter.Format == "json" {
			return formatter.SuccessWithPass(cellView(c), r.PassID)
		}
		return formatter.Success(c.Display)
	}

	if formatter.Format == "json" {
		return formatter.SuccessWithPass(newSheetView(g, r), r.PassID)
	}
	w := cmd.OutOrStdout()
	if err := renderGrid(w, g); err != nil {
		return err
	}
	renderSummary(w, r)
	return nil
}
