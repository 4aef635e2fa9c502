// Package testutil provides scorevideo log fixtures for tests.
package testutil

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/roach88/scoremark/internal/scorelog"
)

// RealisticLogPath returns the path of a fixture log under
// internal/testutil/testdata/realistic, independent of the caller's
// working directory.
func RealisticLogPath(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata", "realistic", name)
}

// OpenLog parses a realistic fixture log, failing the test on error.
func OpenLog(t *testing.T, name string) *scorelog.Log {
	t.Helper()
	log, err := scorelog.OpenLog(RealisticLogPath(name))
	if err != nil {
		t.Fatalf("open fixture %s: %v", name, err)
	}
	return log
}

// OpenRawLog reads a realistic fixture log, failing the test on error.
func OpenRawLog(t *testing.T, name string) *scorelog.RawLog {
	t.Helper()
	raw, err := scorelog.OpenRawLog(RealisticLogPath(name))
	if err != nil {
		t.Fatalf("open fixture %s: %v", name, err)
	}
	return raw
}

// Time parses a scorevideo timestamp and panics on malformed input.
// Intended for literals in tests.
func Time(s string) time.Duration {
	d, err := scorelog.ParseTime(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Behavior builds a behavior with an "either" subject.
func Behavior(frame int, t, description string) scorelog.BehaviorFull {
	return scorelog.BehaviorFull{Frame: frame, Time: Time(t), Description: description, Subject: "either"}
}

// Mark builds a mark.
func Mark(frame int, t, name string) scorelog.Mark {
	return scorelog.Mark{Frame: frame, Time: Time(t), Name: name}
}

// VideoLog builds a parsed log whose marks are a "video start" at frame 1 and
// a "video end" at endFrame/endTime.
func VideoLog(endFrame int, endTime string, behaviors ...scorelog.BehaviorFull) *scorelog.Log {
	return &scorelog.Log{
		Full: append([]scorelog.BehaviorFull{}, behaviors...),
		Marks: []scorelog.Mark{
			Mark(1, "00:00.03", "video start"),
			Mark(endFrame, endTime, "video end"),
		},
	}
}

// LogText renders a scorevideo log holding the given behaviors and marks,
// suitable for writing to a fixture file.
func LogText(behaviors []scorelog.BehaviorFull, marks []scorelog.Mark) string {
	raw := RawLog(behaviors, marks)
	return raw.String()
}

// RawLog builds the line-oriented form of a log holding the given behaviors
// and marks. Mark lines are space aligned.
func RawLog(behaviors []scorelog.BehaviorFull, marks []scorelog.Mark) *scorelog.RawLog {
	raw := &scorelog.RawLog{
		Header: []string{"Video file: fixture.avi"},
		Full:   []string{},
		Marks:  []string{},
	}
	for _, b := range behaviors {
		raw.Full = append(raw.Full, b.ToLine())
	}
	for _, m := range marks {
		raw.Marks = append(raw.Marks, m.ToLine(markRef))
	}
	return raw
}

// markRef is the layout mark lines are aligned to.
const markRef = "        1    00:00.03    video start"

// WriteLog writes a fixture log into dir and returns its path.
func WriteLog(t *testing.T, dir, name string, log *scorelog.Log) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := scorelog.WriteFile(path, RawLog(log.Full, log.Marks)); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// MarkLines returns the trimmed marks section of raw, convenient for
// comparing against expectations.
func MarkLines(raw *scorelog.RawLog) []string {
	out := make([]string, len(raw.Marks))
	for i, line := range raw.Marks {
		out[i] = strings.TrimSpace(line)
	}
	return out
}
