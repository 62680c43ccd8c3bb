package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Mykola-Oleh/CellCalculator/internal/document"
	"github.com/Mykola-Oleh/CellCalculator/internal/engine"
	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
	"github.com/Mykola-Oleh/CellCalculator/internal/store"
	"github.com/Mykola-Oleh/CellCalculator/internal/testutil"
)

// Harness holds the state of one scenario execution.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	name   string
	grid   *sheet.Grid
	last   *engine.Report
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Build the starting grid and recalculate it
// 2. Check the scenario's expect list
// 3. Apply each step, recalculate, check the step's expect list
// 4. Check the final assertions
// 5. Read the pass log back from the store
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	doc := &document.Document{Rows: scenario.Rows, Cols: scenario.Cols, Cells: scenario.Cells}
	grid, err := doc.Grid()
	if err != nil {
		return nil, fmt.Errorf("failed to build grid: %w", err)
	}

	h := &Harness{
		store: st,
		engine: engine.New(
			engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), // Suppress logs in tests
			engine.WithPassIDGenerator(testutil.NewSequentialPassIDs(scenario.Name)),
		),
		name: scenario.Name,
		grid: grid,
	}

	ctx := context.Background()
	result := NewResult()

	if err := h.recalculate(ctx); err != nil {
		return nil, err
	}
	h.check(ctx, "expect", scenario.Expect, result)

	for i, step := range scenario.Steps {
		if err := h.apply(step); err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		if err := h.recalculate(ctx); err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		h.check(ctx, fmt.Sprintf("steps[%d].expect", i), step.Expect, result)
	}
	h.check(ctx, "assertions", scenario.Assertions, result)

	passes, err := st.ListPasses(ctx, h.name)
	if err != nil {
		return nil, err
	}
	for _, p := range passes {
		cycle := make([]string, len(p.Cycle))
		for i, addr := range p.Cycle {
			cycle[i] = string(addr)
		}
		result.Passes = append(result.Passes, PassTrace{
			ID:        p.ID,
			Seq:       p.Seq,
			Cycle:     cycle,
			Evaluated: p.Evaluated,
			Errors:    p.Errors,
		})
	}

	for _, addr := range h.grid.Addresses() {
		display, errored := h.grid.Display(addr), h.grid.HasError(addr)
		if display != "" || errored {
			result.Cells[string(addr)] = CellState{Display: display, Error: errored}
		}
	}

	return result, nil
}

func (h *Harness) apply(step Step) error {
	switch {
	case step.Resize != nil:
		g, err := h.grid.Resize(step.Resize.Rows, step.Resize.Cols)
		if err != nil {
			return err
		}
		h.grid = g
	case step.Set != nil:
		for addr, expr := range step.Set {
			if err := h.grid.SetExpression(sheet.Address(addr), expr); err != nil {
				return err
			}
		}
	}
	return nil
}

// recalculate runs one pass, then saves the sheet and records the pass.
func (h *Harness) recalculate(ctx context.Context) error {
	h.last = h.engine.Recalculate(h.grid)

	if err := h.store.SaveSheet(ctx, h.name, h.grid); err != nil {
		return fmt.Errorf("failed to save sheet: %w", err)
	}
	pass, err := store.PassFromReport(h.name, h.last, h.grid)
	if err != nil {
		return fmt.Errorf("failed to build pass record: %w", err)
	}
	if err := h.store.RecordPass(ctx, pass); err != nil {
		return fmt.Errorf("failed to record pass: %w", err)
	}
	return nil
}

func (h *Harness) check(ctx context.Context, where string, assertions []Assertion, result *Result) {
	actx := &AssertionContext{
		Grid:   h.grid,
		Report: h.last,
		Store:  h.store,
		Sheet:  h.name,
		Ctx:    ctx,
	}
	for i, a := range assertions {
		if err := EvaluateAssertion(a, actx); err != nil {
			result.AddError(fmt.Sprintf("%s[%d]: %s", where, i, err))
		}
	}
}
