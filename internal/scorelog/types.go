package scorelog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Mark is a point-in-time annotation in a log's MARKS section.
//
// Frame and Time are offsets from the start of the log's own video and may
// be negative for moments that precede the recording. Two marks are equal
// (==) iff all three fields match.
type Mark struct {
	Frame int
	Time  time.Duration
	Name  string
}

// BehaviorFull is one scored behavior from a log's FULL LOG section.
type BehaviorFull struct {
	Frame       int
	Time        time.Duration
	Description string

	// Subject is the trailing column scorevideo writes after the description
	// (e.g. "either", "Male"). Empty when the line has no such column.
	Subject string
}

// columnGap separates columns in scorevideo lines. Descriptions may contain
// single spaces, so only tabs or runs of two or more spaces split columns.
var columnGap = regexp.MustCompile(`\t+|\s{2,}`)

// markLayout captures the frame column, the time column, and the gap before
// the name of a space-aligned mark line.
var markLayout = regexp.MustCompile(`^(\s*-?\d+)(\s+-?[\d:.]+)(\s+)\S`)

// ParseMark parses one line of a MARKS section.
func ParseMark(line string) (Mark, error) {
	cols := splitColumns(line)
	if len(cols) < 3 {
		return Mark{}, fmt.Errorf("mark line needs frame, time and name: %q", line)
	}

	frame, err := strconv.Atoi(cols[0])
	if err != nil {
		return Mark{}, fmt.Errorf("mark frame %q: %w", cols[0], err)
	}
	t, err := ParseTime(cols[1])
	if err != nil {
		return Mark{}, fmt.Errorf("mark time: %w", err)
	}

	return Mark{Frame: frame, Time: t, Name: strings.Join(cols[2:], " ")}, nil
}

// ToLineTab renders the mark as a tab separated MARKS line.
func (m Mark) ToLineTab() string {
	return fmt.Sprintf("%d\t%s\t%s", m.Frame, FormatTime(m.Time), m.Name)
}

// ToLine renders the mark in the same notation as ref, an existing MARKS
// line. Tab separated references produce ToLineTab output. Space aligned
// references have their frame and time column widths and name gap copied.
// Anything else falls back to ToLineTab.
func (m Mark) ToLine(ref string) string {
	if strings.Contains(ref, "\t") {
		return m.ToLineTab()
	}
	groups := markLayout.FindStringSubmatch(ref)
	if groups == nil {
		return m.ToLineTab()
	}

	frameCol := fmt.Sprintf("%*d", len(groups[1]), m.Frame)
	timeCol := fmt.Sprintf("%*s", len(groups[2]), FormatTime(m.Time))
	if !strings.HasPrefix(timeCol, " ") {
		timeCol = " " + timeCol
	}
	return frameCol + timeCol + strings.Repeat(" ", len(groups[3])) + m.Name
}

// String implements fmt.Stringer.
func (m Mark) String() string {
	return fmt.Sprintf("Mark(%d, %s, %q)", m.Frame, FormatTime(m.Time), m.Name)
}

// ParseBehaviorFull parses one line of a FULL LOG section.
func ParseBehaviorFull(line string) (BehaviorFull, error) {
	cols := splitColumns(line)
	if len(cols) < 3 {
		return BehaviorFull{}, fmt.Errorf("behavior line needs frame, time and description: %q", line)
	}

	frame, err := strconv.Atoi(cols[0])
	if err != nil {
		return BehaviorFull{}, fmt.Errorf("behavior frame %q: %w", cols[0], err)
	}
	if frame < 0 {
		return BehaviorFull{}, fmt.Errorf("behavior frame %d is negative", frame)
	}
	t, err := ParseTime(cols[1])
	if err != nil {
		return BehaviorFull{}, fmt.Errorf("behavior time: %w", err)
	}
	if t < 0 {
		return BehaviorFull{}, fmt.Errorf("behavior time %s is negative", cols[1])
	}

	b := BehaviorFull{Frame: frame, Time: t, Description: cols[2]}
	if len(cols) > 3 {
		b.Subject = strings.Join(cols[3:], " ")
	}
	return b, nil
}

// ToLine renders the behavior as a space aligned FULL LOG line.
func (b BehaviorFull) ToLine() string {
	line := fmt.Sprintf("%9d  %10s  %-24s  %s", b.Frame, FormatTime(b.Time), b.Description, b.Subject)
	return strings.TrimRight(line, " ")
}

// String implements fmt.Stringer.
func (b BehaviorFull) String() string {
	return fmt.Sprintf("BehaviorFull(%d, %s, %q)", b.Frame, FormatTime(b.Time), b.Description)
}

// splitColumns splits a log line into columns. The first two columns (frame
// and time) never contain spaces, so they are split on any whitespace; the
// remainder is split on tabs or runs of two or more spaces.
func splitColumns(line string) []string {
	rest := strings.TrimSpace(line)
	var cols []string
	for i := 0; i < 2 && rest != ""; i++ {
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			cols = append(cols, rest)
			rest = ""
			break
		}
		cols = append(cols, rest[:end])
		rest = strings.TrimSpace(rest[end:])
	}
	if rest == "" {
		return cols
	}
	for _, c := range columnGap.Split(rest, -1) {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}
