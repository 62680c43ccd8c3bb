// Package sheet provides the grid data model for CellCalculator.
//
// This package contains the address arithmetic, the Cell and Grid types, and
// the canonical serialization used for content hashing. All other internal
// packages import sheet; sheet imports nothing internal.
//
// Key design constraints:
//   - Addresses are canonical uppercase strings ("A1", "AA100"), never pointers
//   - A Grid always holds exactly one Cell per address in its rows × cols rectangle
//   - Only expressions are durable state; display text and error flags are
//     derived by the recalculation engine and never persisted
package sheet
