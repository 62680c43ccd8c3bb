// Package store provides SQLite-backed persistence for named sheets and the
// recalculation log.
//
// Tables:
//   - sheets: one row per named sheet (dimensions, content hash, seq)
//   - cells: the non-empty expressions of each sheet
//   - recalc_passes: one row per recorded recalculation pass
//
// Only expressions are stored. Display state is always recomputed after a
// sheet is loaded.
//
// # Ordering
//
// All ordering uses logical seq INTEGER columns, never timestamps. Sheet
// saves take the next seq across the sheets table; passes carry the seq the
// engine stamped on them. Queries that return several rows always order by
// seq and then by a binary-collated key, so results are stable.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Cells are deleted with their sheet
package store
