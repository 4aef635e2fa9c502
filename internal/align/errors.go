package align

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every *LookupError unwraps to one of these.
var (
	ErrMissingEndingMark     = errors.New("missing ending mark")
	ErrMissingEndingBehavior = errors.New("missing ending behavior")
	ErrBehaviorNotFound      = errors.New("behavior not found")
)

// ErrInvalidPattern is wrapped by every error caused by a search pattern
// that does not compile.
var ErrInvalidPattern = errors.New("invalid pattern")

// LookupErrorCode categorizes lookup failures.
type LookupErrorCode string

const (
	// ErrCodeMissingEndingMark indicates no mark is named VideoEnd.
	ErrCodeMissingEndingMark LookupErrorCode = "MISSING_ENDING_MARK"

	// ErrCodeMissingEndingBehavior indicates no behavior has one of the
	// candidate descriptions.
	ErrCodeMissingEndingBehavior LookupErrorCode = "MISSING_ENDING_BEHAVIOR"

	// ErrCodeBehaviorNotFound indicates no behavior in a chain matches the
	// search pattern. Only returned by the strict variants.
	ErrCodeBehaviorNotFound LookupErrorCode = "BEHAVIOR_NOT_FOUND"
)

// LookupError reports that a sentinel mark, sentinel behavior or anchor
// behavior could not be found.
type LookupError struct {
	Code LookupErrorCode

	// Sentinel is what was searched for: the mark name, the candidate
	// descriptions or the pattern.
	Sentinel string

	// Searched renders the full list that was searched.
	Searched string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	switch e.Code {
	case ErrCodeMissingEndingMark:
		return fmt.Sprintf("no mark with name %q found in list %s", e.Sentinel, e.Searched)
	case ErrCodeMissingEndingBehavior:
		return fmt.Sprintf("no ending behavior description %s found in %s", e.Sentinel, e.Searched)
	case ErrCodeBehaviorNotFound:
		return fmt.Sprintf("no behavior matching %q found in %s", e.Sentinel, e.Searched)
	}
	return fmt.Sprintf("%s: %s not found in %s", e.Code, e.Sentinel, e.Searched)
}

// Unwrap returns the sentinel error for the code.
func (e *LookupError) Unwrap() error {
	switch e.Code {
	case ErrCodeMissingEndingMark:
		return ErrMissingEndingMark
	case ErrCodeMissingEndingBehavior:
		return ErrMissingEndingBehavior
	case ErrCodeBehaviorNotFound:
		return ErrBehaviorNotFound
	}
	return nil
}

// IsLookupError reports whether err is a *LookupError with the given code.
// Uses errors.As to handle wrapped errors.
func IsLookupError(err error, code LookupErrorCode) bool {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Code == code
	}
	return false
}
