package store

import (
	"context"
	"fmt"

	"github.com/Mykola-Oleh/CellCalculator/internal/engine"
	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// Pass is one row of the recalculation log.
type Pass struct {
	ID          string
	Sheet       string
	Seq         int64
	Cycle       []sheet.Address
	Evaluated   int
	Errors      int
	ContentHash string
}

// PassFromReport builds a log row from an engine report and the grid it ran over.
func PassFromReport(sheetName string, r *engine.Report, g *sheet.Grid) (Pass, error) {
	hash, err := sheet.ContentHash(g)
	if err != nil {
		return Pass{}, err
	}
	return Pass{
		ID:          r.PassID,
		Sheet:       sheetName,
		Seq:         r.Seq,
		Cycle:       r.Cycle,
		Evaluated:   r.Evaluated,
		Errors:      r.Errors,
		ContentHash: hash,
	}, nil
}

// RecordPass appends a pass to the log.
// Uses ON CONFLICT(id) DO NOTHING, so recording the same pass twice is a no-op.
func (s *Store) RecordPass(ctx context.Context, p Pass) error {
	cycle, err := marshalCycle(p.Cycle)
	if err != nil {
		return fmt.Errorf("record pass: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO recalc_passes
		(id, sheet_name, seq, cycle, evaluated, errors, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, p.ID, p.Sheet, p.Seq, cycle, p.Evaluated, p.Errors, p.ContentHash)
	if err != nil {
		return fmt.Errorf("record pass: %w", err)
	}
	return nil
}

// ListPasses returns the log of one sheet, oldest first.
func (s *Store) ListPasses(ctx context.Context, sheetName string) ([]Pass, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sheet_name, seq, cycle, evaluated, errors, content_hash
		FROM recalc_passes
		WHERE sheet_name = ?
		ORDER BY seq ASC, id ASC COLLATE BINARY
	`, sheetName)
	if err != nil {
		return nil, fmt.Errorf("list passes: %w", err)
	}
	defer rows.Close()

	var out []Pass
	for rows.Next() {
		var p Pass
		var cycle string
		if err := rows.Scan(&p.ID, &p.Sheet, &p.Seq, &cycle, &p.Evaluated, &p.Errors, &p.ContentHash); err != nil {
			return nil, fmt.Errorf("list passes: scan: %w", err)
		}
		if p.Cycle, err = unmarshalCycle(cycle); err != nil {
			return nil, fmt.Errorf("list passes: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list passes: %w", err)
	}
	return out, nil
}

// LastPassSeq returns the highest recorded seq across all sheets, or 0.
// The engine clock resumes from it so seqs stay increasing across runs.
func (s *Store) LastPassSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM recalc_passes`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("last pass seq: %w", err)
	}
	return seq, nil
}
