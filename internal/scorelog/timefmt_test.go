package scorelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"00:00.03", 30 * time.Millisecond},
		{"30:00.03", 30*time.Minute + 30*time.Millisecond},
		{"06:51.03", 6*time.Minute + 51*time.Second + 30*time.Millisecond},
		{"6:51.03", 6*time.Minute + 51*time.Second + 30*time.Millisecond},
		{"83:09.06", 83*time.Minute + 9*time.Second + 60*time.Millisecond},
		{"-83:09.06", -(83*time.Minute + 9*time.Second + 60*time.Millisecond)},
		{"1:02:03.04", time.Hour + 2*time.Minute + 3*time.Second + 40*time.Millisecond},
		{"00:10", 10 * time.Second},
		{"00:01.5", 1500 * time.Millisecond},
		{"  00:01.50 ", 1500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTime_Invalid(t *testing.T) {
	for _, in := range []string{"", "12", "a:00.00", "00:60.00", "00:5.00", "00:00.", "1:60:00.00", "1:2:3:4", "--1:00.00"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTime(in)
			assert.Error(t, err)
		})
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "00:00.03", FormatTime(30*time.Millisecond))
	assert.Equal(t, "30:00.03", FormatTime(30*time.Minute+30*time.Millisecond))
	assert.Equal(t, "-83:09.06", FormatTime(-(83*time.Minute + 9*time.Second + 60*time.Millisecond)))
	assert.Equal(t, "00:00.00", FormatTime(0))
	assert.Equal(t, "00:00.01", FormatTime(6*time.Millisecond), "rounds to nearest hundredth")
	assert.Equal(t, "00:00.00", FormatTime(4*time.Millisecond))
}

func TestFormatTime_RoundTrip(t *testing.T) {
	for _, s := range []string{"00:00.03", "30:00.03", "-06:51.03", "120:00.99"} {
		d, err := ParseTime(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatTime(d))
	}
}
