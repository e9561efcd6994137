package utils

import (
	"fmt"
	"strings"
	"time"
)

// DisplayDateLayout is the day-first format shown on orders ("14/07/2025, 10:30:00")
const DisplayDateLayout = "02/01/2006, 15:04:05"

// FormatDisplayDate renders t the way order dates are displayed
func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// ParseDisplayDate reads a day/month/year display date with an optional
// time part after a comma. A missing time means midnight.
func ParseDisplayDate(value string, loc *time.Location) (time.Time, error) {
	parts := strings.SplitN(value, ",", 2)
	dmy := strings.Split(strings.TrimSpace(parts[0]), "/")
	if len(dmy) != 3 {
		return time.Time{}, fmt.Errorf("invalid display date %q", value)
	}

	clock := "00:00:00"
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		clock = strings.TrimSpace(parts[1])
	}

	normalized := fmt.Sprintf("%s/%s/%s %s",
		strings.TrimSpace(dmy[0]), strings.TrimSpace(dmy[1]), strings.TrimSpace(dmy[2]), clock)

	for _, layout := range []string{"2/1/2006 15:04:05", "2/1/2006 15:04"} {
		if t, err := time.ParseInLocation(layout, normalized, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid display date %q", value)
}

// SameDay reports whether a and b fall on the same calendar date in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
