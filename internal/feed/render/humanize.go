package render

import (
	"fmt"
	"time"
)

// Humanize returns the difference between the given time and now as text,
// e.g. "13 minutes ago".
func Humanize(t time.Time) string {
	return humanizeSince(t, time.Now())
}

func humanizeSince(t, now time.Time) string {
	if t.IsZero() {
		return "just now"
	}
	diff := now.Sub(t)
	if diff < 0 {
		return "just now"
	}

	days := int(diff.Hours() / 24)
	if d := days / 365; d > 0 {
		return plural(d, "year")
	}
	if d := days / 30; d > 0 {
		return plural(d, "month")
	}
	if d := days / 7; d > 0 {
		return plural(d, "week")
	}
	if days > 0 {
		return plural(days, "day")
	}
	if d := int(diff.Hours()); d > 0 {
		return plural(d, "hour")
	}
	if d := int(diff.Minutes()); d > 0 {
		return plural(d, "minute")
	}
	if d := int(diff.Seconds()); d > 0 {
		return plural(d, "second")
	}
	return "just now"
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
