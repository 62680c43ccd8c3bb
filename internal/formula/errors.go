package formula

import (
	"errors"
	"fmt"
	"sort"
)

// SyntaxError is one parse-time diagnostic.
// Line is 1-based; Column is a 0-based rune offset within the line.
type SyntaxError struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// SyntaxErrors is the non-empty set of errors from one parse, ordered by position.
type SyntaxErrors []SyntaxError

// Error implements the error interface with the text shown in a failing cell.
func (e SyntaxErrors) Error() string {
	return e.Display()
}

// Display returns "Syntax error at <line>:<col>" for the first error.
func (e SyntaxErrors) Display() string {
	if len(e) == 0 {
		return "Syntax error"
	}
	return fmt.Sprintf("Syntax error at %d:%d", e[0].Line, e[0].Column)
}

// IsSyntaxError reports whether err is, or wraps, a SyntaxErrors value.
func IsSyntaxError(err error) bool {
	var se SyntaxErrors
	return errors.As(err, &se)
}

// sortByPosition orders diagnostics by line then column. Lexer and parser
// errors are collected separately and merged here.
func sortByPosition(errs []SyntaxError) {
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Line != errs[j].Line {
			return errs[i].Line < errs[j].Line
		}
		return errs[i].Column < errs[j].Column
	})
}
