package harness

// PassTrace is one recorded recalculation pass, as read back from the store.
type PassTrace struct {
	ID        string   `json:"pass_id"`
	Seq       int64    `json:"seq"`
	Cycle     []string `json:"cycle"`
	Evaluated int      `json:"evaluated"`
	Errors    int      `json:"errors"`
}

// CellState is the final display and error flag of one cell.
type CellState struct {
	Display string `json:"display"`
	Error   bool   `json:"error"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every assertion held.
	Pass bool `json:"pass"`

	// Passes lists every recalculation in seq order.
	Passes []PassTrace `json:"passes"`

	// Cells holds the final state of every cell with a display or an error.
	Cells map[string]CellState `json:"cells"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Passes: []PassTrace{},
		Cells:  make(map[string]CellState),
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
