package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// ErrSheetNotFound is returned when no sheet has the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// SheetInfo summarises a stored sheet.
type SheetInfo struct {
	Name        string
	Rows        int
	Cols        int
	Cells       int
	ContentHash string
	Seq         int64
}

// SaveSheet stores the expressions of g under name, replacing any previous
// version. The whole save is one transaction.
func (s *Store) SaveSheet(ctx context.Context, name string, g *sheet.Grid) error {
	if name == "" {
		return fmt.Errorf("save sheet: name is required")
	}
	hash, err := sheet.ContentHash(g)
	if err != nil {
		return fmt.Errorf("save sheet: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save sheet: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(updated_seq), 0) + 1 FROM sheets`).Scan(&seq); err != nil {
		return fmt.Errorf("save sheet: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sheets (name, row_count, col_count, content_hash, updated_seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			row_count = excluded.row_count,
			col_count = excluded.col_count,
			content_hash = excluded.content_hash,
			updated_seq = excluded.updated_seq
	`, name, g.Rows(), g.Cols(), hash, seq)
	if err != nil {
		return fmt.Errorf("save sheet: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cells WHERE sheet_name = ?`, name); err != nil {
		return fmt.Errorf("save sheet: clear cells: %w", err)
	}

	exprs := g.Expressions()
	addrs := make([]sheet.Address, 0, len(exprs))
	for addr := range exprs {
		addrs = append(addrs, addr)
	}
	slices.SortFunc(addrs, sheet.Compare)

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cells (sheet_name, address, row_num, col_num, expression)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save sheet: prepare: %w", err)
	}
	defer stmt.Close()

	for _, addr := range addrs {
		col, row, err := sheet.ParseAddress(string(addr))
		if err != nil {
			return fmt.Errorf("save sheet: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, name, string(addr), row, col, exprs[addr]); err != nil {
			return fmt.Errorf("save sheet: cell %s: %w", addr, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save sheet: commit: %w", err)
	}
	return nil
}

// LoadSheet rebuilds the grid stored under name. Display state is empty.
func (s *Store) LoadSheet(ctx context.Context, name string) (*sheet.Grid, error) {
	var rows, cols int
	err := s.db.QueryRowContext(ctx, `
		SELECT row_count, col_count FROM sheets WHERE name = ?
	`, name).Scan(&rows, &cols)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load sheet: %w", err)
	}

	g, err := sheet.New(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("load sheet: %w", err)
	}

	cells, err := s.db.QueryContext(ctx, `
		SELECT address, expression FROM cells
		WHERE sheet_name = ?
		ORDER BY row_num ASC, col_num ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("load sheet: %w", err)
	}
	defer cells.Close()

	for cells.Next() {
		var addr, expr string
		if err := cells.Scan(&addr, &expr); err != nil {
			return nil, fmt.Errorf("load sheet: scan: %w", err)
		}
		if err := g.SetExpression(sheet.Address(addr), expr); err != nil {
			return nil, fmt.Errorf("load sheet: %w", err)
		}
	}
	if err := cells.Err(); err != nil {
		return nil, fmt.Errorf("load sheet: %w", err)
	}
	return g, nil
}

// ListSheets returns every stored sheet ordered by name.
func (s *Store) ListSheets(ctx context.Context) ([]SheetInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.name, s.row_count, s.col_count, s.content_hash, s.updated_seq,
			(SELECT COUNT(*) FROM cells c WHERE c.sheet_name = s.name)
		FROM sheets s
		ORDER BY s.name ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	defer rows.Close()

	var out []SheetInfo
	for rows.Next() {
		var info SheetInfo
		if err := rows.Scan(&info.Name, &info.Rows, &info.Cols, &info.ContentHash, &info.Seq, &info.Cells); err != nil {
			return nil, fmt.Errorf("list sheets: scan: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	return out, nil
}

// DeleteSheet removes a sheet and its cells. Its passes are kept.
func (s *Store) DeleteSheet(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sheets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete sheet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sheet: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return nil
}
