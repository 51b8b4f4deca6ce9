package punch

import (
	"math"
	"strings"
	"time"
)

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp reads a stored punch timestamp. Values carrying a Z or a
// numeric offset are taken as written; values without one are UTC, never
// host-local.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if hasZone(s) {
		for _, layout := range zonedLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// hasZone looks for a zone designator in the time part only, so the dashes
// of the date are never mistaken for a negative offset.
func hasZone(s string) bool {
	if len(s) <= len("2006-01-02") {
		return false
	}
	clock := s[len("2006-01-02"):]
	if strings.HasSuffix(clock, "Z") {
		return true
	}
	return strings.ContainsAny(clock, "+-")
}

// DurationMinutes returns whole minutes between two punch timestamps,
// rounded half-up. ok is false when either side is missing or unparseable.
// Negative spans are returned as-is.
func DurationMinutes(inTime, outTime string) (int, bool) {
	in, ok := ParseTimestamp(inTime)
	if !ok {
		return 0, false
	}
	out, ok := ParseTimestamp(outTime)
	if !ok {
		return 0, false
	}
	ms := float64(out.Sub(in).Milliseconds())
	return int(math.Floor(ms/60000 + 0.5)), true
}
