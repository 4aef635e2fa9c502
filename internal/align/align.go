package align

import (
	"fmt"
	"regexp"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/scoremark/internal/scorelog"
)

// Boundary pairs a log with the time and frame, on that log's own timeline,
// at which the next log in the chain begins. For the last log of a chain it
// is the instant the destination begins.
type Boundary struct {
	Log   *scorelog.Log
	Time  time.Duration
	Frame int
}

// Alignment is the result of locating an anchor behavior in a chain.
type Alignment struct {
	// Found is false when no behavior matched. Frames and Time are then zero.
	Found bool

	// LogIndex is the position in the chain of the log holding Anchor,
	// or -1 when nothing matched.
	LogIndex int

	// Anchor is the matched behavior.
	Anchor scorelog.BehaviorFull

	// Frames and Time measure how far the anchor lies before the
	// destination's origin.
	Frames int
	Time   time.Duration
}

// Mark returns the mark placing the anchor on the destination's timeline.
func (a Alignment) Mark(label string) scorelog.Mark {
	return scorelog.Mark{Frame: -a.Frames, Time: -a.Time, Name: label}
}

// Resolve sorts every log in the chain and locates the anchor: the first
// behavior, in the first log containing any match, whose description matches
// pattern at its start. Boundaries of all later logs are accumulated into the
// returned offsets.
//
// Resolve does not fail when nothing matches; inspect Alignment.Found.
func Resolve(chain []Boundary, pattern string) (Alignment, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return Alignment{}, err
	}

	for i, b := range chain {
		if b.Log == nil {
			return Alignment{}, fmt.Errorf("chain entry %d has no log", i)
		}
		b.Log.SortLists()
	}

	a := Alignment{LogIndex: -1}
	for i, b := range chain {
		if a.Found {
			a.Frames += b.Frame
			a.Time += b.Time
			continue
		}
		anchor, ok := firstMatch(b.Log.Full, re)
		if !ok {
			continue
		}
		a.Found = true
		a.LogIndex = i
		a.Anchor = anchor
		a.Frames = b.Frame - anchor.Frame
		a.Time = b.Time - anchor.Time
	}

	return a, nil
}

// CopyMark copies the behavior matching pattern into dest as a mark named
// label, with frame and time adjusted through every boundary in chain.
//
// dest is not modified; the returned log is a copy with the new mark
// appended to its MARKS section. If nothing matches, the mark is inserted at
// frame 0, time 0.
func CopyMark(chain []Boundary, pattern string, dest *scorelog.RawLog, label string) (*scorelog.RawLog, error) {
	a, err := Resolve(chain, pattern)
	if err != nil {
		return nil, err
	}
	return AppendMark(dest, a.Mark(label)), nil
}

// CopyMarkStrict is CopyMark, but fails with ErrBehaviorNotFound when no
// behavior matches pattern.
func CopyMarkStrict(chain []Boundary, pattern string, dest *scorelog.RawLog, label string) (*scorelog.RawLog, error) {
	a, err := Resolve(chain, pattern)
	if err != nil {
		return nil, err
	}
	if !a.Found {
		return nil, notFound(pattern, chain)
	}
	return AppendMark(dest, a.Mark(label)), nil
}

// AppendMark returns a copy of dest with m appended to its marks. The line is
// formatted like dest's first existing mark, or tab separated when dest has
// none.
func AppendMark(dest *scorelog.RawLog, m scorelog.Mark) *scorelog.RawLog {
	out := dest.Clone()
	line := m.ToLineTab()
	if len(out.Marks) > 0 {
		line = m.ToLine(out.Marks[0])
	}
	out.Marks = append(out.Marks, line)
	return out
}

// compilePattern compiles pattern so that it only matches at the start of a
// description. The pattern is NFC normalized like the log text it is
// matched against.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	pattern = norm.NFC.String(pattern)
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w: %w", pattern, ErrInvalidPattern, err)
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w: %w", pattern, ErrInvalidPattern, err)
	}
	return re, nil
}

func firstMatch(behavs []scorelog.BehaviorFull, re *regexp.Regexp) (scorelog.BehaviorFull, bool) {
	for _, b := range behavs {
		if re.MatchString(b.Description) {
			return b, true
		}
	}
	return scorelog.BehaviorFull{}, false
}

func notFound(pattern string, chain []Boundary) error {
	return &LookupError{
		Code:     ErrCodeBehaviorNotFound,
		Sentinel: pattern,
		Searched: fmt.Sprintf("%d logs", len(chain)),
	}
}
