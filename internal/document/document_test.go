package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.yaml", FormatYAML},
		{"a.YML", FormatYAML},
		{"dir/a.json", FormatJSON},
		{"a.cue", FormatCUE},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatFromPath("a.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeYAML(t *testing.T) {
	doc, err := Decode([]byte("rows: 2\ncols: 3\ncells:\n  A1: \"10\"\n  c2: A1 * 2\n"), FormatYAML, "")
	require.NoError(t, err)

	assert.Equal(t, &Document{Rows: 2, Cols: 3, Cells: map[string]string{"A1": "10", "c2": "A1 * 2"}}, doc)

	g, err := doc.Grid()
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, "A1 * 2", g.Expression("C2"))
}

func TestDecodeYAML_RejectsUnknownField(t *testing.T) {
	_, err := Decode([]byte("rows: 2\ncell:\n  A1: \"1\"\n"), FormatYAML, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestDecodeYAML_Empty(t *testing.T) {
	_, err := Decode(nil, FormatYAML, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty document")
}

func TestDecodeJSON(t *testing.T) {
	doc, err := Decode([]byte(`{"rows": 1, "cols": 2, "cells": {"B1": "inc(A1)"}}`), FormatJSON, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"B1": "inc(A1)"}, doc.Cells)

	_, err = Decode([]byte(`{"rows": 1, "extra": true}`), FormatJSON, "")
	assert.Error(t, err)
}

func TestDocumentGrid_DefaultsToTenByTen(t *testing.T) {
	g, err := (&Document{Cells: map[string]string{"J10": "1"}}).Grid()
	require.NoError(t, err)

	assert.Equal(t, DefaultSize, g.Rows())
	assert.Equal(t, DefaultSize, g.Cols())
	assert.Equal(t, "1", g.Expression("J10"))
}

func TestDocumentGrid_Errors(t *testing.T) {
	_, err := (&Document{Rows: 2, Cols: 2, Cells: map[string]string{"C1": "1"}}).Grid()
	assert.ErrorIs(t, err, sheet.ErrUnknownCell)

	_, err = (&Document{Rows: 2, Cols: 2, Cells: map[string]string{"A0": "1"}}).Grid()
	assert.ErrorIs(t, err, sheet.ErrInvalidAddress)

	_, err = (&Document{Rows: -1, Cols: 2}).Grid()
	assert.ErrorIs(t, err, sheet.ErrInvalidDimensions)
}

func TestDocumentGrid_NormalizesNFC(t *testing.T) {
	g, err := (&Document{Rows: 1, Cols: 1, Cells: map[string]string{"A1": "e\u0301"}}).Grid()
	require.NoError(t, err)
	assert.Equal(t, "\u00e9", g.Expression("A1"))
}

func TestEncodeYAML(t *testing.T) {
	g := sheet.MustNew(2, 2)
	require.NoError(t, g.SetExpression("B2", "A1 + 1"))
	require.NoError(t, g.SetExpression("A1", "5"))

	out, err := Encode(FromGrid(g), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "rows: 2\ncols: 2\ncells:\n  A1: \"5\"\n  B2: A1 + 1\n", string(out))
}

func TestEncodeJSON(t *testing.T) {
	g := sheet.MustNew(1, 1)

	out, err := Encode(FromGrid(g), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"rows\": 1,\n  \"cols\": 1\n}\n", string(out))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := sheet.MustNew(3, 2)
	require.NoError(t, g.SetExpression("A1", "7"))
	require.NoError(t, g.SetExpression("B3", "A1 mod 4"))

	for _, ext := range []string{".yaml", ".json", ".cue"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sheet"+ext)
			require.NoError(t, Save(path, g))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, 3, loaded.Rows())
			assert.Equal(t, 2, loaded.Cols())
			assert.Equal(t, g.Expressions(), loaded.Expressions())
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_OutOfRangeCell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rows: 1\ncols: 1\ncells:\n  B1: \"1\"\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, sheet.ErrUnknownCell)
}
