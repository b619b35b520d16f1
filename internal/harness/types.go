package harness

import "github.com/roach88/lispir/internal/ir"

// Result is the outcome of a scenario run.
type Result struct {
	// Pass indicates overall success: every assertion held.
	Pass bool `json:"pass"`

	// Tree is the repaired tree, or the loaded tree if repair failed.
	Tree ir.Node `json:"-"`

	// UnitID is the id the tree was cached under.
	UnitID string `json:"unit_id"`

	// Seq is the logical clock value of the cached unit.
	Seq int64 `json:"seq"`

	// Diagnostics are the problems ir.Validate reported.
	Diagnostics []ir.ValidationError `json:"diagnostics"`

	// FixError is the location repair error, if repair failed.
	FixError string `json:"fix_error,omitempty"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:        true,
		Diagnostics: []ir.ValidationError{},
		Errors:      []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
