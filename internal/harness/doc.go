// Package harness runs sheet scenarios end to end and snapshots the result.
//
// A scenario describes a starting grid, a sequence of edits, and assertions
// about the cells after each recalculation. Every pass goes through the real
// engine and is recorded in a fresh in-memory store, so a scenario also
// exercises persistence.
//
// # Scenario Format
//
//	name: cycle_break
//	description: "Breaking a cycle clears the CYCLE marks"
//	rows: 1
//	cols: 3
//	cells:
//	  A1: "B1 * 2"
//	  B1: "A1 + 1"
//	  C1: "A1 + 1"
//	expect:                  # checked after the initial pass
//	  - type: cycle
//	    cells: [A1, B1]
//	steps:                   # each step edits, then recalculates
//	  - set: { B1: "4" }
//	    expect:
//	      - type: display
//	        cell: A1
//	        value: "8"
//	  - resize: { rows: 2, cols: 3 }
//	assertions:              # checked after the last step
//	  - type: error_count
//	    count: 0
//
// A step with neither set nor resize just recalculates again.
//
// # Assertion Types
//
//   - display: the cell's display text equals value
//   - display_prefix: the cell's display text starts with value
//   - error / no_error: the cell's error flag is set / clear
//   - cycle: the last pass reported exactly cells (empty means no cycle)
//   - error_count: the last pass left count cells errored
//   - pass_count: count passes were recorded for the scenario
//
// # Deterministic Testing
//
// Pass IDs come from testutil.SequentialPassIDs prefixed with the scenario
// name, and pass seqs start at 1, so golden snapshots are byte-identical
// across runs. Engine logs are discarded.
package harness
