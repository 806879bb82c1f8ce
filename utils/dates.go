// utils/dates.go - Calendar date helpers
package utils

import (
	"fmt"
	"strings"
	"time"
)

// Stored dates appear in two historical formats: ISO "2006-01-02" from the
// current intake forms, and "02-01-2006" from legacy imports. Every parse and
// month-window check has to tolerate both.
var calendarDateFormats = []string{
	"2006-01-02",
	"02-01-2006",
	"2006-01-02 15:04:05",
}

// ParseCalendarDate parses a stored date string at day granularity.
func ParseCalendarDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range calendarDateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return TruncateToDay(t), true
		}
	}
	return time.Time{}, false
}

// TruncateToDay strips the time-of-day component.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole-day difference to - from, ignoring
// time-of-day and timezone.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// FormatDate renders a date in the canonical stored format.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthLikePatterns returns the two LIKE patterns matching report_date values
// within the given month, one per stored format.
func MonthLikePatterns(t time.Time) (string, string) {
	return fmt.Sprintf("%04d-%02d-%%", t.Year(), int(t.Month())),
		fmt.Sprintf("%%-%02d-%04d", int(t.Month()), t.Year())
}
