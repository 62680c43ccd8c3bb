// Package engine implements full-grid recalculation for CellCalculator.
//
// ARCHITECTURE:
//
// Every call to Engine.Recalculate recomputes the whole grid from scratch.
// There is no dirty tracking and no cached AST; expressions are re-read on
// every pass. A pass moves through fixed phases:
//
//  1. Idle → GraphBuilt: scan raw expression text for reference tokens and
//     build the forward dependency map (cell → cells it reads)
//  2. GraphBuilt → CyclesMarked: depth-first search for the first cycle;
//     its members display "CYCLE" and are excluded from evaluation
//  3. CyclesMarked → Ordered: Kahn's algorithm over the remaining cells
//  4. Ordered → Evaluating → Done: parse and evaluate each cell in order,
//     writing its display text and error flag
//
// The dependency scan is textual, not a parse-tree walk. It over-approximates
// on purpose: references inside malformed expressions still count, so a
// syntactically broken cell can still be part of a detected cycle.
//
// Single-Writer:
// A pass owns exclusive write access to every cell's Display and HasError
// fields for its duration. Callers must not mutate expressions concurrently
// with Recalculate. There are no suspension points and no cancellation;
// a pass over a finite grid always runs to completion.
//
// KNOWN LIMITATION:
// Only the first cycle found is reported per pass. Cells on a second,
// disjoint cycle (and cells behind it) are never reached by the scheduler;
// they receive "Unresolved dependency" rather than "CYCLE".
//
// Determinism:
// Nodes are visited in row-major grid order and adjacency lists are sorted
// the same way, so the reported cycle and the evaluation order are stable
// across runs.
package engine
