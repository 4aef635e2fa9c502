package scorelog

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Section titles as they appear in scorevideo logs.
const (
	SectionRaw   = "RAW LOG"
	SectionFull  = "FULL LOG"
	SectionNotes = "NOTES"
	SectionMarks = "MARKS"
)

// sectionOrder is the order sections are written in.
var sectionOrder = []string{SectionRaw, SectionFull, SectionNotes, SectionMarks}

// defaultColumns are the column title lines written for sections that were
// not read from a file.
var defaultColumns = map[string]string{
	SectionRaw:   "    frame|      time|  command|action",
	SectionFull:  "    frame|      time|description             |subject",
	SectionMarks: "    frame|      time|mark name",
}

const rule = "------------------------------------------"

// maxLineSize bounds a single log line.
const maxLineSize = 1 << 20

// RawLog is the line-oriented form of a scorevideo log.
//
// Each section holds its body lines verbatim. A nil slice means the section
// is absent from the log and will not be written; a non-nil empty slice is
// written as an empty section.
type RawLog struct {
	Header []string
	Raw    []string
	Full   []string
	Notes  []string
	Marks  []string

	// columns holds the column title line read for each section so that
	// WriteTo reproduces it.
	columns map[string]string
}

// ReadRawLog parses a scorevideo log from r.
func ReadRawLog(r io.Reader) (*RawLog, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lines = append(lines, norm.NFC.String(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	raw := &RawLog{columns: make(map[string]string)}
	inHeader := true

	for i := 0; i < len(lines); {
		title := strings.TrimSpace(lines[i])
		if isSectionTitle(title) && i+1 < len(lines) && isRule(lines[i+1]) {
			next, err := raw.readSection(lines, i)
			if err != nil {
				return nil, err
			}
			inHeader = false
			i = next
			continue
		}

		if inHeader {
			raw.Header = append(raw.Header, lines[i])
		} else if title != "" {
			return nil, &ParseError{Line: i + 1, Text: lines[i], Msg: "text outside of a section"}
		}
		i++
	}

	// Trailing blank lines separate the header from the first section.
	for len(raw.Header) > 0 && strings.TrimSpace(raw.Header[len(raw.Header)-1]) == "" {
		raw.Header = raw.Header[:len(raw.Header)-1]
	}

	return raw, nil
}

// readSection consumes the section whose title is at lines[start] and
// returns the index of the first line after its closing rule.
func (r *RawLog) readSection(lines []string, start int) (int, error) {
	title := strings.TrimSpace(lines[start])
	body := r.section(title)
	if *body != nil {
		return 0, &ParseError{Section: title, Line: start + 1, Text: lines[start], Msg: "duplicate section"}
	}

	i := start + 2
	if _, hasColumns := defaultColumns[title]; hasColumns {
		if i >= len(lines) || isRule(lines[i]) {
			return 0, &ParseError{Section: title, Line: i + 1, Msg: "missing column titles"}
		}
		r.columns[title] = lines[i]
		i++
		if i >= len(lines) || !isRule(lines[i]) {
			return 0, &ParseError{Section: title, Line: i + 1, Msg: "missing rule after column titles"}
		}
		i++
	}

	collected := []string{}
	for ; i < len(lines); i++ {
		if isRule(lines[i]) {
			*body = collected
			return i + 1, nil
		}
		collected = append(collected, lines[i])
	}
	return 0, &ParseError{Section: title, Line: len(lines), Msg: "unterminated section"}
}

// section returns a pointer to the body slice for a section title.
func (r *RawLog) section(title string) *[]string {
	switch title {
	case SectionRaw:
		return &r.Raw
	case SectionFull:
		return &r.Full
	case SectionNotes:
		return &r.Notes
	case SectionMarks:
		return &r.Marks
	}
	return nil
}

// Clone returns a deep copy of r. Appending to the copy's sections never
// affects r.
func (r *RawLog) Clone() *RawLog {
	c := &RawLog{
		Header: cloneLines(r.Header),
		Raw:    cloneLines(r.Raw),
		Full:   cloneLines(r.Full),
		Notes:  cloneLines(r.Notes),
		Marks:  cloneLines(r.Marks),
	}
	if r.columns != nil {
		c.columns = make(map[string]string, len(r.columns))
		for k, v := range r.columns {
			c.columns[k] = v
		}
	}
	return c
}

// WriteTo writes r in scorevideo text format. It implements io.WriterTo.
func (r *RawLog) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	for _, line := range r.Header {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	first := true
	for _, title := range sectionOrder {
		body := *r.section(title)
		if body == nil {
			continue
		}
		if len(r.Header) > 0 || !first {
			buf.WriteByte('\n')
		}
		first = false

		buf.WriteString(title + "\n")
		buf.WriteString(rule + "\n")
		if cols, ok := defaultColumns[title]; ok {
			if read, ok := r.columns[title]; ok {
				cols = read
			}
			buf.WriteString(cols + "\n")
			buf.WriteString(rule + "\n")
		}
		for _, line := range body {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
		buf.WriteString(rule + "\n")
	}

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// String renders r in scorevideo text format.
func (r *RawLog) String() string {
	var sb strings.Builder
	_, _ = r.WriteTo(&sb)
	return sb.String()
}

func cloneLines(lines []string) []string {
	if lines == nil {
		return nil
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

func isSectionTitle(s string) bool {
	switch s {
	case SectionRaw, SectionFull, SectionNotes, SectionMarks:
		return true
	}
	return false
}

// isRule reports whether line is a dashed section rule.
func isRule(line string) bool {
	t := strings.TrimSpace(line)
	return len(t) >= 3 && strings.Trim(t, "-") == ""
}
