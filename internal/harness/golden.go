package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// Snapshot renders the pass log and final cells of a result as canonical
// JSON. Content hashes are left out so goldens stay readable.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	passes := make([]any, len(result.Passes))
	for i, p := range result.Passes {
		cycle := make([]any, len(p.Cycle))
		for j, addr := range p.Cycle {
			cycle[j] = addr
		}
		passes[i] = map[string]any{
			"pass_id":   p.ID,
			"seq":       p.Seq,
			"cycle":     cycle,
			"evaluated": p.Evaluated,
			"errors":    p.Errors,
		}
	}

	cells := make(map[string]any, len(result.Cells))
	for addr, c := range result.Cells {
		cells[addr] = map[string]any{
			"display": c.Display,
			"error":   c.Error,
		}
	}

	return sheet.MarshalCanonical(map[string]any{
		"scenario_name": scenarioName,
		"passes":        passes,
		"cells":         cells,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
