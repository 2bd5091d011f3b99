package util

import (
	"time"

	"github.com/dustin/go-humanize"
)

// TimestampLayout is how instants are shown to users.
const TimestampLayout = "2006-01-02 15:04:05 MST"

// FormatInteger renders n with thousands separators.
func FormatInteger(n int64) string {
	return humanize.Comma(n)
}

// FormatDelta renders a signed difference, e.g. "+1,200" or "-3".
func FormatDelta(d int64) string {
	if d > 0 {
		return "+" + humanize.Comma(d)
	}
	if d == 0 {
		return "±0"
	}
	return humanize.Comma(d)
}

// FormatTimestamp renders t in loc using TimestampLayout.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(TimestampLayout)
}

// FormatAge describes how long ago t was, relative to now.
func FormatAge(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
