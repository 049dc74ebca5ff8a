package thumbnail

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxTimestamp is the longest duration, in seconds, that timestamps handle.
// It keeps millisecond arithmetic within int64.
const MaxTimestamp = float64(1 << 40)

// ParseTimestamp converts an hh:mm:ss.fraction string to seconds.
// Anything that is not three numeric colon-separated parts, or that
// exceeds MaxTimestamp, yields 0.
func ParseTimestamp(s string) float64 {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0
	}

	var total float64
	for i, unit := range []float64{3600, 60, 1} {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0
		}
		total += v * unit
	}
	if total > MaxTimestamp {
		return 0
	}
	return total
}

// FormatTimestamp renders seconds as HH:MM:SS.mmm, clamped to
// [0, MaxTimestamp]
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	seconds = min(seconds, MaxTimestamp)
	ms := int64(math.Round(seconds * 1000))
	h := ms / 3_600_000
	m := (ms / 60_000) % 60
	s := (ms / 1000) % 60
	frac := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, frac)
}

// Midpoint returns the timestamp halfway through a clip of the given duration
func Midpoint(duration string) string {
	return FormatTimestamp(ParseTimestamp(duration) / 2)
}
