package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mykola-Oleh/CellCalculator/internal/engine"
)

// SaveOptions holds flags for the save command.
type SaveOptions struct {
	*RootOptions
	Database string
	Name     string
}

// SaveResult reports a stored sheet.
type SaveResult struct {
	Name   string `json:"name"`
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
	Cells  int    `json:"cells"`
	Seq    int64  `json:"seq"`
	Errors int    `json:"errors"`
}

func (r SaveResult) String() string {
	return fmt.Sprintf("✓ Saved %s (%dx%d, %d cells) as pass %d, %d errors", r.Name, r.Rows, r.Cols, r.Cells, r.Seq, r.Errors)
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "save <sheet-file>",
		Short: "Store a sheet document in the database",
		Long: `Load a sheet document, recalculate it, and store its expressions under
a name. Any previous sheet of that name is replaced. The pass is appended
to the recalculation log.

Examples:
  cellcalc save budget.yaml --db ./cellcalc.db --name budget`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Name, "name", "", "sheet name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runSave(opts *SaveOptions, path string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	g, err := loadSheetFile(path)
	if err != nil {
		return err
	}

	st, err := openStore(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	eng, err := newEngine(ctx, opts.RootOptions, cmd, st, engine.UUIDv7Generator{})
	if err != nil {
		return err
	}
	report := eng.Recalculate(g)
	if err := recordPass(ctx, st, opts.Name, report, g); err != nil {
		return err
	}

	return formatter.SuccessWithPass(SaveResult{
		Name:   opts.Name,
		Rows:   g.Rows(),
		Cols:   g.Cols(),
		Cells:  len(g.Expressions()),
		Seq:    report.Seq,
		Errors: report.Errors,
	}, report.PassID)
}
