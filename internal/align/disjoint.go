package align

import (
	"fmt"

	"github.com/roach88/scoremark/internal/scorelog"
)

// DisjointChain builds a chain from consecutive, non-overlapping logs, using
// each log's VideoEnd mark as its boundary. The first log lacking that mark
// fails the whole chain with the error from GetEndingMark.
func DisjointChain(logs []*scorelog.Log) ([]Boundary, error) {
	chain := make([]Boundary, 0, len(logs))
	for i, log := range logs {
		if log == nil {
			return nil, fmt.Errorf("log %d is nil", i)
		}
		end, err := GetEndingMark(log.Marks)
		if err != nil {
			return nil, err
		}
		chain = append(chain, Boundary{Log: log, Time: end.Time, Frame: end.Frame})
	}
	return chain, nil
}

// CopyMarkDisjoint is CopyMark over a chain built by DisjointChain: logs are
// consecutive and non-overlapping, and dest begins where the last one ends.
func CopyMarkDisjoint(logs []*scorelog.Log, pattern string, dest *scorelog.RawLog, label string) (*scorelog.RawLog, error) {
	chain, err := DisjointChain(logs)
	if err != nil {
		return nil, err
	}
	return CopyMark(chain, pattern, dest, label)
}

// CopyMarkDisjointStrict is CopyMarkDisjoint, but fails with
// ErrBehaviorNotFound when no behavior matches pattern.
func CopyMarkDisjointStrict(logs []*scorelog.Log, pattern string, dest *scorelog.RawLog, label string) (*scorelog.RawLog, error) {
	chain, err := DisjointChain(logs)
	if err != nil {
		return nil, err
	}
	return CopyMarkStrict(chain, pattern, dest, label)
}
