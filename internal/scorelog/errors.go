package scorelog

import "fmt"

// ParseError reports a malformed scorevideo log.
//
// Line is 1-based. For errors from ReadRawLog it counts lines in the file;
// for errors from FromRawLog it counts lines within Section's body.
type ParseError struct {
	Section string
	Line    int
	Text    string
	Msg     string
}

func (e *ParseError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
	}
	if e.Text == "" {
		return fmt.Sprintf("%s line %d: %s", e.Section, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s line %d: %s: %q", e.Section, e.Line, e.Msg, e.Text)
}
