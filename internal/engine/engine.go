package engine

import (
	"errors"
	"log/slog"
	"math/big"
	"strings"

	"github.com/Mykola-Oleh/CellCalculator/internal/formula"
	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// Display texts written by the engine itself, outside the evaluator's set.
const (
	DisplayCycle          = "CYCLE"
	MsgUnresolved         = "Unresolved dependency"
	msgUnknownCell        = "Unknown cell %s"
	msgRefError           = "Ref error: %s"
	msgRefValueNotANumber = "Ref value is not a number: %s"
)

// Phase is a step of a recalculation pass.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseGraphBuilt
	PhaseCyclesMarked
	PhaseOrdered
	PhaseEvaluating
	PhaseDone
)

var phaseNames = [...]string{
	PhaseIdle:         "idle",
	PhaseGraphBuilt:   "graph_built",
	PhaseCyclesMarked: "cycles_marked",
	PhaseOrdered:      "ordered",
	PhaseEvaluating:   "evaluating",
	PhaseDone:         "done",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Report summarises one pass. The grid itself carries the per-cell results.
type Report struct {
	PassID string
	Seq    int64

	// Cycle is the first detected cycle in discovery order, or nil.
	Cycle []sheet.Address

	// Order is the evaluation order of every non-cycle cell that was scheduled.
	Order []sheet.Address

	// Unresolved lists cells the scheduler could never reach.
	Unresolved []sheet.Address

	// Evaluated counts cells with a non-empty expression that were parsed.
	Evaluated int

	// Errors counts cells left with the error flag set, cycle members included.
	Errors int

	Phase Phase
}

// CycleErr returns the detected cycle as an error, or nil when there is none.
func (r *Report) CycleErr() error {
	if len(r.Cycle) == 0 {
		return nil
	}
	return &CycleError{Path: r.Cycle}
}

// Engine recomputes grids. It holds no per-grid state between passes; the
// only thing it carries is the pass counter.
type Engine struct {
	logger *slog.Logger
	passID PassIDGenerator
	clock  *Clock
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger for phase transitions and pass summaries.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPassIDGenerator replaces the default UUIDv7 pass IDs.
func WithPassIDGenerator(g PassIDGenerator) EngineOption {
	return func(e *Engine) {
		if g != nil {
			e.passID = g
		}
	}
}

// WithClock sets the pass counter, typically one resumed with NewClockAt.
func WithClock(c *Clock) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// New creates an Engine.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.Default(),
		passID: UUIDv7Generator{},
		clock:  NewClock(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recalculate runs one full pass over grid, writing Display and HasError of
// every cell. It never fails: malformed input degrades to a cell-local error.
func (e *Engine) Recalculate(grid *sheet.Grid) *Report {
	r := &Report{
		PassID: e.passID.Generate(),
		Seq:    e.clock.Next(),
		Phase:  PhaseIdle,
	}
	log := e.logger.With("pass_id", r.PassID, "seq", r.Seq)

	graph := BuildGraph(grid)
	e.advance(log, r, PhaseGraphBuilt, "nodes", len(graph.Nodes()), "edges", graph.EdgeCount())

	r.Cycle = graph.FindCycle()
	inCycle := make(map[sheet.Address]bool, len(r.Cycle))
	for _, addr := range r.Cycle {
		inCycle[addr] = true
		cell, _ := grid.Cell(addr)
		cell.Display = DisplayCycle
		cell.HasError = true
	}
	e.advance(log, r, PhaseCyclesMarked, "cycle_len", len(r.Cycle))

	r.Order, r.Unresolved = graph.TopologicalOrder(inCycle)
	e.advance(log, r, PhaseOrdered, "scheduled", len(r.Order), "unresolved", len(r.Unresolved))

	e.advance(log, r, PhaseEvaluating)
	resolve := CellResolver(grid)
	for _, addr := range r.Order {
		cell, _ := grid.Cell(addr)
		if e.evaluateCell(cell, resolve) {
			r.Evaluated++
		}
	}
	for _, addr := range r.Unresolved {
		cell, _ := grid.Cell(addr)
		cell.Display = MsgUnresolved
		cell.HasError = true
	}

	for _, addr := range grid.Addresses() {
		if grid.HasError(addr) {
			r.Errors++
		}
	}
	e.advance(log, r, PhaseDone)

	attrs := []any{"cells", grid.Len(), "evaluated", r.Evaluated, "errors", r.Errors}
	if err := r.CycleErr(); err != nil {
		attrs = append(attrs, "cycle", err.Error())
	}
	log.Info("recalculation complete", attrs...)
	return r
}

func (e *Engine) advance(log *slog.Logger, r *Report, next Phase, attrs ...any) {
	log.Debug("phase transition", append([]any{"from", r.Phase.String(), "to", next.String()}, attrs...)...)
	r.Phase = next
}

// evaluateCell writes one cell's result. It reports whether the cell had an
// expression to process.
func (e *Engine) evaluateCell(cell *sheet.Cell, resolve formula.Resolver) bool {
	cell.HasError = false
	cell.Display = ""
	if cell.IsEmpty() {
		return false
	}

	ast, err := formula.Parse(cell.Expression)
	if err != nil {
		cell.HasError = true
		var errs formula.SyntaxErrors
		if errors.As(err, &errs) {
			cell.Display = errs.Display()
		} else {
			cell.Display = err.Error()
		}
		return true
	}

	res := formula.Evaluate(ast, resolve)
	cell.Display = res.String()
	cell.HasError = res.IsError()
	return true
}

// CellResolver reads referenced cells of grid as they stand at the moment of
// the call. During a pass the scheduler guarantees every in-grid dependency
// was written first; outside a pass the grid should be freshly recalculated.
func CellResolver(grid *sheet.Grid) formula.Resolver {
	return func(addr sheet.Address) formula.Result {
		ref, ok := grid.Cell(addr)
		if !ok {
			return formula.Fail(msgUnknownCell, addr)
		}
		if ref.HasError {
			return formula.Fail(msgRefError, ref.Display)
		}
		if ref.IsEmpty() {
			return formula.OKInt64(0)
		}
		v, ok := new(big.Int).SetString(strings.TrimSpace(ref.Display), 10)
		if !ok {
			return formula.Fail(msgRefValueNotANumber, ref.Display)
		}
		return formula.OK(v)
	}
}
