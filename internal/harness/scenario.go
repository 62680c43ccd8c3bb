package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// Scenario defines one end-to-end recalculation test.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file and
	// the sheet in the store.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Rows and Cols size the starting grid. Zero means 10.
	Rows int `yaml:"rows,omitempty"`
	Cols int `yaml:"cols,omitempty"`

	// Cells holds the starting expressions by address.
	Cells map[string]string `yaml:"cells,omitempty"`

	// Expect is checked after the initial pass.
	Expect []Assertion `yaml:"expect,omitempty"`

	// Steps are applied in order, each followed by a full recalculation.
	Steps []Step `yaml:"steps,omitempty"`

	// Assertions are checked after the last pass.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one edit. Set and Resize are mutually exclusive; a step with
// neither recalculates the unchanged grid.
type Step struct {
	Set    map[string]string `yaml:"set,omitempty"`
	Resize *Resize           `yaml:"resize,omitempty"`
	Expect []Assertion       `yaml:"expect,omitempty"`
}

// Resize replaces the grid with a rows × cols one, copying expressions forward.
type Resize struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// Assertion checks one property of the grid or the pass log.
type Assertion struct {
	Type  string   `yaml:"type"`
	Cell  string   `yaml:"cell,omitempty"`
	Value string   `yaml:"value,omitempty"`
	Cells []string `yaml:"cells,omitempty"`
	Count int      `yaml:"count,omitempty"`
}

// Assertion types.
const (
	AssertDisplay       = "display"
	AssertDisplayPrefix = "display_prefix"
	AssertError         = "error"
	AssertNoError       = "no_error"
	AssertCycle         = "cycle"
	AssertErrorCount    = "error_count"
	AssertPassCount     = "pass_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for addr := range s.Cells {
		if _, _, err := sheet.ParseAddress(addr); err != nil {
			return fmt.Errorf("cells: %w", err)
		}
	}

	for i, a := range s.Expect {
		if err := validateAssertion(fmt.Sprintf("expect[%d]", i), &a); err != nil {
			return err
		}
	}
	for i, step := range s.Steps {
		if step.Set != nil && step.Resize != nil {
			return fmt.Errorf("steps[%d]: set and resize are mutually exclusive", i)
		}
		for addr := range step.Set {
			if _, _, err := sheet.ParseAddress(addr); err != nil {
				return fmt.Errorf("steps[%d].set: %w", i, err)
			}
		}
		if step.Resize != nil && (step.Resize.Rows < 1 || step.Resize.Cols < 1) {
			return fmt.Errorf("steps[%d].resize: rows and cols must be positive", i)
		}
		for j, a := range step.Expect {
			if err := validateAssertion(fmt.Sprintf("steps[%d].expect[%d]", i, j), &a); err != nil {
				return err
			}
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(fmt.Sprintf("assertions[%d]", i), &a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(where string, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("%s: type is required", where)
	case AssertDisplay, AssertDisplayPrefix, AssertError, AssertNoError:
		if a.Cell == "" {
			return fmt.Errorf("%s: cell is required for %s", where, a.Type)
		}
	case AssertCycle:
	case AssertErrorCount, AssertPassCount:
		if a.Count < 0 {
			return fmt.Errorf("%s: count must be non-negative for %s", where, a.Type)
		}
	default:
		return fmt.Errorf("%s: unknown assertion type %q", where, a.Type)
	}
	return nil
}
