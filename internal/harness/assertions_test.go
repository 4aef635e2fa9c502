package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/scoremark/internal/scorelog"
	"github.com/roach88/scoremark/internal/testutil"
)

func TestEvaluateExpect(t *testing.T) {
	found := &Result{
		Found: true,
		Mark:  scorelog.Mark{Frame: -200, Time: testutil.Time("-00:07.00"), Name: "feed"},
		Marks: []string{"-200\t-00:07.00\tfeed"},
	}
	failed := &Result{ErrorCode: "BEHAVIOR_NOT_FOUND", Marks: []string{}}

	tests := []struct {
		name     string
		result   *Result
		expect   ExpectClause
		wantErrs int
		contains string
	}{
		{"empty_expect", found, ExpectClause{}, 0, ""},
		{"all_match", found, ExpectClause{Found: boolPtr(true), Frame: intPtr(-200), Time: "-00:07.00"}, 0, ""},
		{"found_mismatch", found, ExpectClause{Found: boolPtr(false)}, 1, "Expectation failed: found"},
		{"time_mismatch", found, ExpectClause{Time: "-00:07.01"}, 1, "Actual: -00:07.00"},
		{"frame_and_time_mismatch", found, ExpectClause{Frame: intPtr(1), Time: "00:00.00"}, 2, "[1] -200"},
		{"expected_error", failed, ExpectClause{Error: "BEHAVIOR_NOT_FOUND"}, 0, ""},
		{"wrong_error", failed, ExpectClause{Error: "MISSING_ENDING_MARK"}, 1, "Actual: BEHAVIOR_NOT_FOUND"},
		{"unexpected_error", failed, ExpectClause{Frame: intPtr(0)}, 1, "Expected: no error"},
		{"missing_error", found, ExpectClause{Error: "BEHAVIOR_NOT_FOUND"}, 1, "Actual: no error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := EvaluateExpect(tt.result, tt.expect)
			assert.Len(t, errs, tt.wantErrs)
			if tt.contains != "" && len(errs) > 0 {
				assert.Contains(t, errs[0], tt.contains)
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	assert.Equal(t, "a\nb\n", string(Snapshot(&Result{Marks: []string{"a", "b"}})))
	assert.Equal(t, "error: MISSING_ENDING_MARK\n", string(Snapshot(&Result{ErrorCode: "MISSING_ENDING_MARK"})))
}
