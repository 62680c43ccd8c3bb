package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Mykola-Oleh/CellCalculator/internal/engine"
	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
	"github.com/Mykola-Oleh/CellCalculator/internal/store"
)

// AssertionContext is what an assertion may inspect.
type AssertionContext struct {
	Grid   *sheet.Grid
	Report *engine.Report
	Store  *store.Store
	Sheet  string
	Ctx    context.Context
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Cell     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	if e.Cell != "" {
		return fmt.Sprintf("%s %s: expected %s, got %s", e.Type, e.Cell, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

// EvaluateAssertion checks a single assertion.
func EvaluateAssertion(a Assertion, actx *AssertionContext) error {
	addr := sheet.Canonical(a.Cell)
	fail := func(expected, actual string) error {
		return &AssertionError{Type: a.Type, Cell: string(addr), Expected: expected, Actual: actual}
	}

	switch a.Type {
	case AssertDisplay, AssertDisplayPrefix, AssertError, AssertNoError:
		if !actx.Grid.Contains(addr) {
			return fail("a cell in the grid", "no such cell")
		}
	}

	switch a.Type {
	case AssertDisplay:
		if got := actx.Grid.Display(addr); got != a.Value {
			return fail(fmt.Sprintf("%q", a.Value), fmt.Sprintf("%q", got))
		}
	case AssertDisplayPrefix:
		if got := actx.Grid.Display(addr); !strings.HasPrefix(got, a.Value) {
			return fail(fmt.Sprintf("prefix %q", a.Value), fmt.Sprintf("%q", got))
		}
	case AssertError:
		if !actx.Grid.HasError(addr) {
			return fail("error flag set", fmt.Sprintf("clear (display %q)", actx.Grid.Display(addr)))
		}
	case AssertNoError:
		if actx.Grid.HasError(addr) {
			return fail("error flag clear", fmt.Sprintf("set (display %q)", actx.Grid.Display(addr)))
		}
	case AssertCycle:
		want := make([]sheet.Address, len(a.Cells))
		for i, c := range a.Cells {
			want[i] = sheet.Canonical(c)
		}
		got := actx.Report.Cycle
		if !slices.Equal(want, got) {
			return fail(formatCycle(want), formatCycle(got))
		}
	case AssertErrorCount:
		if actx.Report.Errors != a.Count {
			return fail(fmt.Sprintf("%d errored cells", a.Count), fmt.Sprintf("%d", actx.Report.Errors))
		}
	case AssertPassCount:
		passes, err := actx.Store.ListPasses(actx.Ctx, actx.Sheet)
		if err != nil {
			return fmt.Errorf("pass_count: %w", err)
		}
		if len(passes) != a.Count {
			return fail(fmt.Sprintf("%d passes", a.Count), fmt.Sprintf("%d", len(passes)))
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func formatCycle(path []sheet.Address) string {
	if len(path) == 0 {
		return "no cycle"
	}
	return (&engine.CycleError{Path: path}).Error()
}
