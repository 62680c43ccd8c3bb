package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// AddressResult describes one cell position.
type AddressResult struct {
	Address string `json:"address"`
	Column  int    `json:"column"`
	Letters string `json:"letters"`
	Row     int    `json:"row"`
}

func (a AddressResult) String() string {
	return fmt.Sprintf("%s = column %d (%s), row %d", a.Address, a.Column, a.Letters, a.Row)
}

// NewAddressCommand creates the address command.
func NewAddressCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address <address> | <column> <row>",
		Short: "Convert between cell addresses and column/row numbers",
		Long: `Decode an address such as AA10 into its 1-based column and row,
or encode a column and row into an address.

Examples:
  cellcalc address AA10
  cellcalc address 27 10`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddress(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runAddress(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	var col, row int
	var err error
	if len(args) == 1 {
		col, row, err = sheet.ParseAddress(args[0])
	} else {
		col, row, err = parseColumnRow(args[0], args[1])
	}
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid address", err)
	}

	return formatter.Success(AddressResult{
		Address: string(sheet.FormatAddress(col, row)),
		Column:  col,
		Letters: sheet.ColumnName(col),
		Row:     row,
	})
}

func parseColumnRow(colText, rowText string) (int, int, error) {
	col, err := strconv.Atoi(colText)
	if err != nil || col < 1 {
		return 0, 0, fmt.Errorf("%w: column %q must be a positive integer", sheet.ErrInvalidAddress, colText)
	}
	row, err := strconv.Atoi(rowText)
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("%w: row %q must be a positive integer", sheet.ErrInvalidAddress, rowText)
	}
	return col, row, nil
}
