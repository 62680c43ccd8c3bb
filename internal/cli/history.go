package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
}

// PassEntry is one recorded recalculation pass.
type PassEntry struct {
	PassID      string   `json:"pass_id"`
	Seq         int64    `json:"seq"`
	Cycle       []string `json:"cycle"`
	Evaluated   int      `json:"evaluated"`
	Errors      int      `json:"errors"`
	ContentHash string   `json:"content_hash"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history <name>",
		Short: "Show the recalculation log of a sheet",
		Long: `List every recorded recalculation pass of a sheet in sequence order,
with the cycle it found and its evaluated and error counts.

Examples:
  cellcalc history budget --db ./cellcalc.db
  cellcalc history budget --db ./cellcalc.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, name string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	passes, err := st.ListPasses(ctx, name)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read pass log", err)
	}

	entries := make([]PassEntry, len(passes))
	for i, p := range passes {
		cycle := addressStrings(p.Cycle)
		if cycle == nil {
			cycle = []string{}
		}
		entries[i] = PassEntry{
			PassID:      p.ID,
			Seq:         p.Seq,
			Cycle:       cycle,
			Evaluated:   p.Evaluated,
			Errors:      p.Errors,
			ContentHash: p.ContentHash,
		}
	}

	if opts.Format == "json" {
		return formatter.Success(entries)
	}

	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintf(w, "No passes recorded for sheet: %s\n", name)
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tPASS\tEVALUATED\tERRORS\tCYCLE")
	for _, e := range entries {
		cycle := "-"
		if len(e.Cycle) > 0 {
			cycle = fmt.Sprint(e.Cycle)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", e.Seq, e.PassID, e.Evaluated, e.Errors, cycle)
	}
	return tw.Flush()
}
