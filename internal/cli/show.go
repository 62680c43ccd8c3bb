package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Mykola-Oleh/CellCalculator/internal/document"
	"github.com/Mykola-Oleh/CellCalculator/internal/engine"
	"github.com/Mykola-Oleh/CellCalculator/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
	Cell     string
	Output   string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Recalculate and print a stored sheet",
		Long: `Load a named sheet from the database and recalculate it. Only
expressions are stored, so every display is recomputed and the pass is
appended to the log.

Examples:
  cellcalc show budget --db ./cellcalc.db
  cellcalc show budget --db ./cellcalc.db --cell B2
  cellcalc show budget --db ./cellcalc.db -o budget.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Cell, "cell", "", "print only this cell")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "export the sheet document to this path")

	return cmd
}

func runShow(opts *ShowOptions, name string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	g, err := st.LoadSheet(ctx, name)
	if errors.Is(err, store.ErrSheetNotFound) {
		_ = formatter.Error(ErrCodeNotFound, "sheet not found: "+name, nil)
		return NewExitError(ExitCommandError, "sheet not found: "+name)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load sheet", err)
	}

	eng, err := newEngine(ctx, opts.RootOptions, cmd, st, engine.UUIDv7Generator{})
	if err != nil {
		return err
	}
	report := eng.Recalculate(g)
	if err := recordPass(ctx, st, name, report, g); err != nil {
		return err
	}

	if opts.Output != "" {
		if err := document.Save(opts.Output, g); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to write sheet", err)
		}
	}

	return emitSheet(formatter, cmd, g, report, opts.Cell)
}
