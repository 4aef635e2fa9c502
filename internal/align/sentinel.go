package align

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/scoremark/internal/scorelog"
)

// Names of the marks scorevideo places at the first and last frame of a
// video.
const (
	VideoStart = "video start"
	VideoEnd   = "video end"
)

// GetEndingMark returns the first mark named VideoEnd.
// Returns a *LookupError wrapping ErrMissingEndingMark if there is none.
func GetEndingMark(marks []scorelog.Mark) (scorelog.Mark, error) {
	for _, m := range marks {
		if m.Name == VideoEnd {
			return m, nil
		}
	}
	return scorelog.Mark{}, &LookupError{
		Code:     ErrCodeMissingEndingMark,
		Sentinel: VideoEnd,
		Searched: fmt.Sprint(marks),
	}
}

// GetEndingBehav returns the first behavior whose description is exactly
// one of descriptions. Candidates are NFC normalized like log text. Returns a *LookupError wrapping
// ErrMissingEndingBehavior if there is none.
func GetEndingBehav(behavs []scorelog.BehaviorFull, descriptions []string) (scorelog.BehaviorFull, error) {
	want := make(map[string]struct{}, len(descriptions))
	for _, d := range descriptions {
		want[norm.NFC.String(d)] = struct{}{}
	}

	for _, b := range behavs {
		if _, ok := want[b.Description]; ok {
			return b, nil
		}
	}
	return scorelog.BehaviorFull{}, &LookupError{
		Code:     ErrCodeMissingEndingBehavior,
		Sentinel: "[" + quoteAll(descriptions) + "]",
		Searched: fmt.Sprint(behavs),
	}
}

func quoteAll(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}
