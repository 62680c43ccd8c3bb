package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

func TestSaveLoadSheet(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	g := createTestGrid(t, 3, 4, map[string]string{
		"A1": "10",
		"D3": "A1 * 2",
		"B2": "   ",
	})

	require.NoError(t, s.SaveSheet(ctx, "budget", g))

	loaded, err := s.LoadSheet(ctx, "budget")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Rows())
	assert.Equal(t, 4, loaded.Cols())
	assert.Equal(t, map[sheet.Address]string{"A1": "10", "D3": "A1 * 2"}, loaded.Expressions())
	assert.Equal(t, "", loaded.Display("A1"), "display state is never persisted")
}

func TestSaveSheet_ReplacesPreviousVersion(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSheet(ctx, "s", createTestGrid(t, 2, 2, map[string]string{"A1": "1", "B2": "2"})))
	require.NoError(t, s.SaveSheet(ctx, "s", createTestGrid(t, 1, 1, map[string]string{"A1": "3"})))

	loaded, err := s.LoadSheet(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Rows())
	assert.Equal(t, map[sheet.Address]string{"A1": "3"}, loaded.Expressions())
}

func TestSaveSheet_RequiresName(t *testing.T) {
	s := createTestStore(t)
	err := s.SaveSheet(context.Background(), "", createTestGrid(t, 1, 1, nil))
	assert.Error(t, err)
}

func TestLoadSheet_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.LoadSheet(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestListSheets(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	g := createTestGrid(t, 2, 2, map[string]string{"A1": "1", "B1": "A1"})

	require.NoError(t, s.SaveSheet(ctx, "zeta", g))
	require.NoError(t, s.SaveSheet(ctx, "alpha", createTestGrid(t, 1, 1, nil)))

	infos, err := s.ListSheets(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	hash, err := sheet.ContentHash(g)
	require.NoError(t, err)

	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, 0, infos[0].Cells)
	assert.Equal(t, int64(2), infos[0].Seq)
	assert.Equal(t, SheetInfo{Name: "zeta", Rows: 2, Cols: 2, Cells: 2, ContentHash: hash, Seq: 1}, infos[1])
}

func TestDeleteSheet(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveSheet(ctx, "gone", createTestGrid(t, 1, 2, map[string]string{"A1": "1"})))

	require.NoError(t, s.DeleteSheet(ctx, "gone"))

	_, err := s.LoadSheet(ctx, "gone")
	assert.ErrorIs(t, err, ErrSheetNotFound)

	var cells int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM cells").Scan(&cells))
	assert.Equal(t, 0, cells, "cells cascade with their sheet")

	assert.ErrorIs(t, s.DeleteSheet(ctx, "gone"), ErrSheetNotFound)
}
