package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/scoremark/internal/scorelog"
)

// AssertionError is returned when an expectation fails.
// It includes the resulting marks to help debug the failure.
type AssertionError struct {
	Field    string   // Expectation that failed
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Marks    []string // Destination marks after the transplant
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Expectation failed: %s\n", e.Field)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Marks) > 0 {
		fmt.Fprintf(&buf, "\nMarks:\n")
		for i, line := range e.Marks {
			fmt.Fprintf(&buf, "  [%d] %s\n", i+1, strings.TrimSpace(line))
		}
	}

	return buf.String()
}

// EvaluateExpect checks a result against an expect clause and returns one
// message per failed expectation.
func EvaluateExpect(result *Result, expect ExpectClause) []string {
	var errs []string
	fail := func(field, expected, actual string) {
		errs = append(errs, (&AssertionError{
			Field:    field,
			Expected: expected,
			Actual:   actual,
			Marks:    result.Marks,
		}).Error())
	}

	if expect.Error != "" || result.ErrorCode != "" {
		if expect.Error != result.ErrorCode {
			fail("error", describeCode(expect.Error), describeCode(result.ErrorCode))
		}
		// Nothing was inserted; offsets are meaningless.
		return errs
	}

	if expect.Found != nil && *expect.Found != result.Found {
		fail("found", fmt.Sprint(*expect.Found), fmt.Sprint(result.Found))
	}
	if expect.Frame != nil && *expect.Frame != result.Mark.Frame {
		fail("frame", fmt.Sprint(*expect.Frame), fmt.Sprint(result.Mark.Frame))
	}
	if expect.Time != "" {
		// validateScenario has already parsed it.
		want, err := scorelog.ParseTime(expect.Time)
		if err != nil || want != result.Mark.Time {
			fail("time", expect.Time, scorelog.FormatTime(result.Mark.Time))
		}
	}

	return errs
}

func describeCode(code string) string {
	if code == "" {
		return "no error"
	}
	return code
}
