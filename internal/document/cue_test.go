package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCUE(t *testing.T) {
	src := `
rows: 4
cols: 2
cells: {
	A1: "3"
	b4: "A1 * A1"
}
`
	doc, err := Decode([]byte(src), FormatCUE, "sheet.cue")
	require.NoError(t, err)

	assert.Equal(t, 4, doc.Rows)
	assert.Equal(t, 2, doc.Cols)
	assert.Equal(t, map[string]string{"A1": "3", "b4": "A1 * A1"}, doc.Cells)
}

func TestDecodeCUE_Defaults(t *testing.T) {
	doc, err := Decode([]byte(`cells: A1: "1"`), FormatCUE, "")
	require.NoError(t, err)

	assert.Equal(t, DefaultSize, doc.Rows)
	assert.Equal(t, DefaultSize, doc.Cols)
}

func TestDecodeCUE_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"zero rows", "rows: 0\ncells: {}"},
		{"non-string expression", "cells: A1: 5"},
		{"bad address key", `cells: "1A": "1"`},
		{"unknown field", "rows: 2\ntitle: \"x\""},
		{"syntax", "rows: ("},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.src), FormatCUE, "bad.cue")
			require.Error(t, err)

			var se *SchemaError
			assert.True(t, errors.As(err, &se), "want *SchemaError, got %T: %v", err, err)
		})
	}
}

func TestSchemaError_Message(t *testing.T) {
	err := &SchemaError{Message: "conflicting values"}
	assert.Equal(t, "conflicting values", err.Error())
}
