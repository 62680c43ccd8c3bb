package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Mykola-Oleh/CellCalculator/internal/engine"
	"github.com/Mykola-Oleh/CellCalculator/internal/formula"
	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	File string
}

// CellSyntax lists the syntax errors of one expression.
type CellSyntax struct {
	Cell       string                `json:"cell,omitempty"`
	Expression string                `json:"expression"`
	Errors     []formula.SyntaxError `json:"errors"`
}

// CheckResult is the outcome of the check command.
type CheckResult struct {
	Valid  bool         `json:"valid"`
	Issues []CellSyntax `json:"issues,omitempty"`
	Cycle  []string     `json:"cycle,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check [expression...]",
		Short: "Syntax-check formulas without evaluating them",
		Long: `Report every syntax error in the given formulas.

With --file, every cell of the sheet is checked and the sheet's dependency
graph is searched for a circular reference. Nothing is evaluated or written.

Exit codes:
  0 - No problems found
  1 - Syntax error or cycle found
  2 - Command error

Examples:
  cellcalc check "5 * (10"
  cellcalc check --file budget.yaml --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "sheet document to check")

	return cmd
}

func runCheck(opts *CheckOptions, exprs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.File == "" && len(exprs) == 0 {
		_ = formatter.Error(ErrCodeInvalidInput, "nothing to check: pass expressions or --file", nil)
		return NewExitError(ExitCommandError, "nothing to check")
	}

	result := CheckResult{Valid: true}

	for _, expr := range exprs {
		if errs := formula.Check(expr); len(errs) > 0 {
			result.Issues = append(result.Issues, CellSyntax{Expression: expr, Errors: errs})
		}
	}

	if opts.File != "" {
		g, err := loadSheetFile(opts.File)
		if err != nil {
			return err
		}
		exprsByCell := g.Expressions()
		addrs := make([]sheet.Address, 0, len(exprsByCell))
		for addr := range exprsByCell {
			addrs = append(addrs, addr)
		}
		slices.SortFunc(addrs, sheet.Compare)
		for _, addr := range addrs {
			if errs := formula.Check(exprsByCell[addr]); len(errs) > 0 {
				result.Issues = append(result.Issues, CellSyntax{Cell: string(addr), Expression: exprsByCell[addr], Errors: errs})
			}
		}
		result.Cycle = addressStrings(engine.BuildGraph(g).FindCycle())
	}

	result.Valid = len(result.Issues) == 0 && len(result.Cycle) == 0

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		writeCheckText(cmd, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "check failed")
	}
	return nil
}

func writeCheckText(cmd *cobra.Command, result CheckResult) {
	w := cmd.OutOrStdout()
	for _, issue := range result.Issues {
		label := issue.Expression
		if issue.Cell != "" {
			label = issue.Cell
		}
		fmt.Fprintf(w, "✗ %s: %s\n", label, formula.SyntaxErrors(issue.Errors).Display())
		for _, se := range issue.Errors {
			fmt.Fprintf(w, "  %s\n", se.Error())
		}
	}
	if len(result.Cycle) > 0 {
		path := make([]sheet.Address, len(result.Cycle))
		for i, c := range result.Cycle {
			path[i] = sheet.Address(c)
		}
		fmt.Fprintf(w, "✗ %s\n", (&engine.CycleError{Path: path}).Error())
	}
	if result.Valid {
		fmt.Fprintln(w, "✓ No problems found")
	}
}
