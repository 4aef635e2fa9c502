package scorelog

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// Log is the parsed form of a scorevideo log.
type Log struct {
	Full  []BehaviorFull
	Marks []Mark
}

// ReadLog parses a scorevideo log from r.
func ReadLog(r io.Reader) (*Log, error) {
	raw, err := ReadRawLog(r)
	if err != nil {
		return nil, err
	}
	return FromRawLog(raw)
}

// FromRawLog parses the FULL LOG and MARKS sections of raw. Absent sections
// produce empty lists. Blank lines are skipped.
func FromRawLog(raw *RawLog) (*Log, error) {
	log := &Log{
		Full:  []BehaviorFull{},
		Marks: []Mark{},
	}

	for i, line := range raw.Full {
		if isBlank(line) {
			continue
		}
		b, err := ParseBehaviorFull(line)
		if err != nil {
			return nil, &ParseError{Section: SectionFull, Line: i + 1, Text: line, Msg: err.Error()}
		}
		log.Full = append(log.Full, b)
	}

	for i, line := range raw.Marks {
		if isBlank(line) {
			continue
		}
		m, err := ParseMark(line)
		if err != nil {
			return nil, &ParseError{Section: SectionMarks, Line: i + 1, Text: line, Msg: err.Error()}
		}
		log.Marks = append(log.Marks, m)
	}

	return log, nil
}

// SortLists stably sorts behaviors and marks by frame, in place.
// Entries sharing a frame keep their file order.
func (l *Log) SortLists() {
	sort.SliceStable(l.Full, func(i, j int) bool {
		return l.Full[i].Frame < l.Full[j].Frame
	})
	sort.SliceStable(l.Marks, func(i, j int) bool {
		return l.Marks[i].Frame < l.Marks[j].Frame
	})
}

// OpenLog reads and parses the log file at path.
func OpenLog(path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	log, err := ReadLog(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return log, nil
}

// OpenRawLog reads the log file at path without parsing its entries.
func OpenRawLog(path string) (*RawLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	raw, err := ReadRawLog(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return raw, nil
}

// WriteFile writes raw to path, replacing any existing file.
func WriteFile(path string, raw *RawLog) error {
	if err := os.WriteFile(path, []byte(raw.String()), 0o644); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func isBlank(line string) bool {
	for _, r := range line {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}
