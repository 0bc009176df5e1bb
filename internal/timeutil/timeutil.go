// Package timeutil holds the small pure time helpers shared by the statistics
// engines and the display layer. Everything operates on an already-normalized
// time.Time in the local zone.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

// DayName returns the full English weekday name ("Monday").
func DayName(t time.Time) string {
	return t.Weekday().String()
}

// HourOf returns the local hour of day, 0-23.
func HourOf(t time.Time) int {
	return t.Hour()
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Hour12 formats an hour of day (0-23) in 12-hour clock form, e.g. "9 PM".
func Hour12(hour int) string {
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d %s", display, ampm)
}

// RelativeTime renders t relative to now: "Never" for an unset instant,
// then "Today", "Yesterday", or "N days ago".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() || t.UnixMilli() == 0 {
		return "Never"
	}
	days := int(math.Floor(now.Sub(t).Hours() / 24))
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

// FormatDuration renders minutes as "45m", "2h", or "2h 15m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dh", hours)
}
