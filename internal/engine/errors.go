package engine

import (
	"errors"
	"strings"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// CycleError describes the cycle detected during a pass.
//
// Recalculate never returns it: cycle members are marked in the grid and the
// pass continues. It exists so callers that want to fail on a cycle, such as
// the CLI's check mode, can surface Report.Cycle as an error.
type CycleError struct {
	// Path lists the members in discovery order. The first member is
	// repeated at the end of the message to close the loop.
	Path []sheet.Address
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return "cycle detected"
	}
	parts := make([]string, 0, len(e.Path)+1)
	for _, addr := range e.Path {
		parts = append(parts, string(addr))
	}
	parts = append(parts, string(e.Path[0]))
	return "cycle detected: " + strings.Join(parts, " → ")
}

// IsCycleError reports whether err is or wraps a *CycleError.
func IsCycleError(err error) bool {
	var ce *CycleError
	return errors.As(err, &ce)
}
