package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mykola-Oleh/CellCalculator/internal/engine"
	"github.com/Mykola-Oleh/CellCalculator/internal/formula"
	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	File string // optional sheet whose cells references resolve against
}

// EvalResult is the outcome of evaluating one expression.
type EvalResult struct {
	Expression   string                `json:"expression"`
	Value        string                `json:"value,omitempty"`
	Error        string                `json:"error,omitempty"`
	SyntaxErrors []formula.SyntaxError `json:"syntax_errors,omitempty"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a single formula",
		Long: `Evaluate a formula and print its value.

Without --file every cell reference fails with "Unknown cell". With --file
the sheet is recalculated first and references read its cells.

Exit codes:
  0 - Expression evaluated to a number
  1 - Syntax or evaluation error
  2 - Command error (unreadable sheet, etc.)

Examples:
  cellcalc eval "2 * (3 + 4)"
  cellcalc eval "inc(A1) mod 7" --file budget.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "sheet document to resolve references against")

	return cmd
}

func runEval(opts *EvalOptions, expr string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	resolve := func(addr sheet.Address) formula.Result {
		return formula.Fail("Unknown cell %s", addr)
	}
	if opts.File != "" {
		g, err := loadSheetFile(opts.File)
		if err != nil {
			return err
		}
		eng, err := newEngine(commandContext(cmd), opts.RootOptions, cmd, nil, engine.UUIDv7Generator{})
		if err != nil {
			return err
		}
		eng.Recalculate(g)
		formatter.VerboseLog("Recalculated %s (%dx%d)", opts.File, g.Rows(), g.Cols())
		resolve = engine.CellResolver(g)
	}

	result := EvalResult{Expression: expr}

	ast, err := formula.Parse(expr)
	if err != nil {
		var syntaxErrs formula.SyntaxErrors
		if !errors.As(err, &syntaxErrs) {
			return WrapExitError(ExitCommandError, "unexpected parser failure", err)
		}
		result.Error = syntaxErrs.Display()
		result.SyntaxErrors = syntaxErrs
		if opts.Format == "json" {
			_ = formatter.Error(ErrCodeSyntax, result.Error, result)
		} else {
			_ = formatter.Error(ErrCodeSyntax, result.Error, nil)
			for _, se := range syntaxErrs {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", se.Error())
			}
		}
		return NewExitError(ExitFailure, result.Error)
	}

	formatter.VerboseLog("Parsed: %s", formula.Format(ast))

	res := formula.Evaluate(ast, resolve)
	if res.IsError() {
		result.Error = res.Err().Message
		_ = formatter.Error(ErrCodeEvaluation, result.Error, nil)
		return NewExitError(ExitFailure, result.Error)
	}

	result.Value = res.String()
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(result.Value)
}
