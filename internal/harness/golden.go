package harness

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders a result for golden comparison: the destination's MARKS
// lines, or the lookup error code when the transplant failed.
func Snapshot(result *Result) []byte {
	if result.ErrorCode != "" {
		return []byte("error: " + result.ErrorCode + "\n")
	}
	return []byte(strings.Join(result.Marks, "\n") + "\n")
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also inspect Pass and Errors.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an already computed result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Snapshot(result))
}
