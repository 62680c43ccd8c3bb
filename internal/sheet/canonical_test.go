package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortsKeys(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"rows":  2,
		"cells": map[string]string{"B1": "A1", "A1": "1 < 2"},
		"cols":  int64(3),
		"ok":    true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"cells":{"A1":"1 < 2","B1":"A1"},"cols":3,"ok":true,"rows":2}`, string(data))
}

func TestMarshalCanonical_Rejects(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)
	_, err = MarshalCanonical(1.5)
	assert.Error(t, err)
	_, err = MarshalCanonical(map[string]any{"x": struct{}{}})
	assert.Error(t, err)
}

func TestMarshalCanonical_LineSeparators(t *testing.T) {
	data, err := MarshalCanonical("a\u2028b")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\"", string(data))

	// A literal backslash followed by "u2028" stays escaped.
	data, err = MarshalCanonical(`a\u2028b`)
	require.NoError(t, err)
	assert.Equal(t, `"a\\u2028b"`, string(data))
}

func TestMarshalCanonical_NFC(t *testing.T) {
	data, err := MarshalCanonical("e\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(data))
}

func TestContentHash_IgnoresDisplayState(t *testing.T) {
	a := MustNew(2, 2)
	b := MustNew(2, 2)
	require.NoError(t, a.SetExpression("A1", "5"))
	require.NoError(t, b.SetExpression("A1", "5"))
	cell, _ := b.Cell("A1")
	cell.Display = "5"

	ha, err := ContentHash(a)
	require.NoError(t, err)
	hb, err := ContentHash(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
	assert.Len(t, ha, 64)

	require.NoError(t, b.SetExpression("A1", "6"))
	hc, err := ContentHash(b)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc)

	c := MustNew(2, 3)
	require.NoError(t, c.SetExpression("A1", "5"))
	hd, err := ContentHash(c)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hd, "dimensions are part of the hash")
}
