package harness

import (
	"errors"
	"fmt"

	"github.com/roach88/scoremark/internal/align"
	"github.com/roach88/scoremark/internal/scorelog"
	"github.com/roach88/scoremark/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Build the chain logs and the destination from their inline specs
// 2. Resolve the anchor to learn whether the pattern matched
// 3. Transplant through CopyMark or CopyMarkDisjoint (strict variants when set)
// 4. Evaluate the expect clause against the outcome
//
// Lookup failures (missing "video end", no match in strict mode) are part of
// the outcome and are checked against expect.error. Any other failure is
// returned as an error.
func Run(scenario *Scenario) (*Result, error) {
	logs := make([]*scorelog.Log, len(scenario.Logs))
	for i, entry := range scenario.Logs {
		log, err := buildLog(entry)
		if err != nil {
			return nil, fmt.Errorf("logs[%d]: %w", i, err)
		}
		logs[i] = log
	}

	destLog, err := buildLog(scenario.Dest)
	if err != nil {
		return nil, fmt.Errorf("dest: %w", err)
	}
	dest := testutil.RawLog(destLog.Full, destLog.Marks)

	result := NewResult()

	out, found, err := transplant(scenario, logs, dest)
	if err != nil {
		var lookupErr *align.LookupError
		if !errors.As(err, &lookupErr) {
			return nil, fmt.Errorf("transplant: %w", err)
		}
		result.ErrorCode = string(lookupErr.Code)
	} else {
		result.Found = found
		result.Marks = append(result.Marks, out.Marks...)
		mark, err := scorelog.ParseMark(out.Marks[len(out.Marks)-1])
		if err != nil {
			return nil, fmt.Errorf("parse inserted mark: %w", err)
		}
		result.Mark = mark
	}

	for _, errMsg := range EvaluateExpect(result, scenario.Expect) {
		result.AddError(errMsg)
	}

	return result, nil
}

// transplant runs the copy the scenario describes and reports whether the
// pattern matched.
func transplant(s *Scenario, logs []*scorelog.Log, dest *scorelog.RawLog) (*scorelog.RawLog, bool, error) {
	var chain []align.Boundary
	if s.Disjoint {
		var err error
		if chain, err = align.DisjointChain(logs); err != nil {
			return nil, false, err
		}
	} else {
		chain = make([]align.Boundary, len(logs))
		for i, log := range logs {
			if s.Logs[i].Boundary == nil {
				return nil, false, fmt.Errorf("logs[%d]: boundary is required unless disjoint is set", i)
			}
			t, err := scorelog.ParseTime(s.Logs[i].Boundary.Time)
			if err != nil {
				return nil, false, fmt.Errorf("logs[%d].boundary: %w", i, err)
			}
			chain[i] = align.Boundary{Log: log, Time: t, Frame: s.Logs[i].Boundary.Frame}
		}
	}

	a, err := align.Resolve(chain, s.Pattern)
	if err != nil {
		return nil, false, err
	}

	var out *scorelog.RawLog
	switch {
	case s.Disjoint && s.Strict:
		out, err = align.CopyMarkDisjointStrict(logs, s.Pattern, dest, s.Label)
	case s.Disjoint:
		out, err = align.CopyMarkDisjoint(logs, s.Pattern, dest, s.Label)
	case s.Strict:
		out, err = align.CopyMarkStrict(chain, s.Pattern, dest, s.Label)
	default:
		out, err = align.CopyMark(chain, s.Pattern, dest, s.Label)
	}
	return out, a.Found, err
}

func buildLog(entry LogSpec) (*scorelog.Log, error) {
	log := &scorelog.Log{Full: []scorelog.BehaviorFull{}, Marks: []scorelog.Mark{}}
	for i, b := range entry.Behaviors {
		t, err := scorelog.ParseTime(b.Time)
		if err != nil {
			return nil, fmt.Errorf("behaviors[%d]: %w", i, err)
		}
		log.Full = append(log.Full, scorelog.BehaviorFull{
			Frame:       b.Frame,
			Time:        t,
			Description: b.Description,
			Subject:     "either",
		})
	}
	for i, m := range entry.Marks {
		t, err := scorelog.ParseTime(m.Time)
		if err != nil {
			return nil, fmt.Errorf("marks[%d]: %w", i, err)
		}
		log.Marks = append(log.Marks, scorelog.Mark{Frame: m.Frame, Time: t, Name: m.Name})
	}
	return log, nil
}
