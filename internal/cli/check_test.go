package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Valid(t *testing.T) {
	out, err := execute(t, NewCheckCommand(&RootOptions{Format: "text"}), "1 + 2", "inc(A1) mod 3")
	require.NoError(t, err)
	assert.Equal(t, "✓ No problems found\n", out)
}

func TestCheck_SyntaxError(t *testing.T) {
	out, err := execute(t, NewCheckCommand(&RootOptions{Format: "text"}), "1 + 2", "5 * (10")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ 5 * (10: Syntax error at 1:")
	assert.NotContains(t, out, "1 + 2")
}

func TestCheck_NothingToCheck(t *testing.T) {
	_, err := execute(t, NewCheckCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheck_SheetReportsCellsAndCycle(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.yaml", `rows: 2
cols: 2
cells:
  A1: "B1 + 1"
  B1: "A1"
  A2: "3 +"
  B2: "7"
`)

	out, err := execute(t, NewCheckCommand(&RootOptions{Format: "json"}), "--file", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var got CheckResult
	resp := decodeResponse(t, out, &got)
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, got.Valid)
	assert.Equal(t, []string{"A1", "B1"}, got.Cycle)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, "A2", got.Issues[0].Cell)
	assert.NotEmpty(t, got.Issues[0].Errors)
}

func TestCheck_SheetCycleText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "loop.yaml", `cells:
  A1: "A1"
`)

	out, err := execute(t, NewCheckCommand(&RootOptions{Format: "text"}), "--file", path)
	require.Error(t, err)
	assert.Equal(t, "✗ cycle detected: A1 → A1\n", out)
}
