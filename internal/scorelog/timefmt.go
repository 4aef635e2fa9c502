package scorelog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// centisecond is the resolution of scorevideo timestamps.
const centisecond = 10 * time.Millisecond

// ParseTime parses a scorevideo timestamp.
//
// Accepted forms are [-]M:SS.CC and [-]H:MM:SS.CC. The fractional part may
// have between one and nine digits; the seconds field may omit it entirely.
// Minutes are unbounded in the two-field form ("83:09.06" is valid).
func ParseTime(s string) (time.Duration, error) {
	orig := s
	s = strings.TrimSpace(s)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q: want [-]MM:SS.CC", orig)
	}

	var minutes int64
	for i, p := range parts[:len(parts)-1] {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 || p == "" {
			return 0, fmt.Errorf("invalid time %q: bad field %q", orig, p)
		}
		if i == 0 && len(parts) == 3 {
			minutes = n * 60
			continue
		}
		if len(parts) == 3 && n > 59 {
			return 0, fmt.Errorf("invalid time %q: minutes out of range", orig)
		}
		minutes += n
	}

	secField := parts[len(parts)-1]
	whole, frac, hasFrac := strings.Cut(secField, ".")
	secs, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || secs < 0 || secs > 59 || len(whole) != 2 {
		return 0, fmt.Errorf("invalid time %q: bad seconds %q", orig, secField)
	}

	var nanos int64
	if hasFrac {
		if frac == "" || len(frac) > 9 {
			return 0, fmt.Errorf("invalid time %q: bad fraction %q", orig, frac)
		}
		padded := frac + strings.Repeat("0", 9-len(frac))
		nanos, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: bad fraction %q", orig, frac)
		}
	}

	d := time.Duration(minutes)*time.Minute + time.Duration(secs)*time.Second + time.Duration(nanos)
	if neg {
		d = -d
	}
	return d, nil
}

// FormatTime renders d in scorevideo notation, rounding to the nearest
// hundredth of a second. Negative durations get a leading "-".
func FormatTime(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	cs := int64((d + centisecond/2) / centisecond)
	minutes := cs / 6000
	secs := (cs % 6000) / 100
	hundredths := cs % 100
	return fmt.Sprintf("%s%02d:%02d.%02d", sign, minutes, secs, hundredths)
}
