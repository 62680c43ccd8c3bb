package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// SheetsOptions holds flags for the sheets command.
type SheetsOptions struct {
	*RootOptions
	Database string
}

// SheetSummary is one row of the sheets listing.
type SheetSummary struct {
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Cells       int    `json:"cells"`
	Seq         int64  `json:"seq"`
	ContentHash string `json:"content_hash"`
}

// NewSheetsCommand creates the sheets command.
func NewSheetsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SheetsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "List stored sheets",
		Long: `List every sheet in the database with its size, cell count, and the
pass that last saved it.

Examples:
  cellcalc sheets --db ./cellcalc.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSheets(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSheets(opts *SheetsOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	infos, err := st.ListSheets(ctx)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list sheets", err)
	}

	summaries := make([]SheetSummary, len(infos))
	for i, info := range infos {
		summaries[i] = SheetSummary{
			Name:        info.Name,
			Rows:        info.Rows,
			Cols:        info.Cols,
			Cells:       info.Cells,
			Seq:         info.Seq,
			ContentHash: info.ContentHash,
		}
	}

	if opts.Format == "json" {
		return formatter.Success(summaries)
	}

	w := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No sheets stored.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tCELLS\tSEQ")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%d\n", s.Name, s.Rows, s.Cols, s.Cells, s.Seq)
	}
	return tw.Flush()
}
