package harness

import "github.com/roach88/scoremark/internal/scorelog"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates every expectation held.
	Pass bool `json:"pass"`

	// Found reports whether the pattern matched a behavior.
	Found bool `json:"found"`

	// Mark is the mark that was inserted. Zero when the run failed.
	Mark scorelog.Mark `json:"mark"`

	// Marks holds the destination's MARKS section after the transplant.
	Marks []string `json:"marks"`

	// ErrorCode is the lookup error code when the transplant failed.
	ErrorCode string `json:"error_code,omitempty"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Marks:  []string{},
		Errors: []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
