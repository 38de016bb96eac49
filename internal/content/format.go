package content

import (
	"fmt"
	"time"
)

const displayDateLayout = "January 2, 2006"

// FormatDate renders t as "March 4, 2025". The zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDateLayout)
}

// FormatDateRange renders an event span compactly: a single date when both
// ends fall on the same day, "March 4 - 6, 2025" within a month,
// "March 30 - April 2, 2025" within a year, and two full dates otherwise.
func FormatDateRange(start, end time.Time) string {
	switch {
	case start.IsZero():
		return FormatDate(end)
	case end.IsZero() || sameDay(start, end):
		return FormatDate(start)
	case start.Year() != end.Year():
		return fmt.Sprintf("%s - %s", FormatDate(start), FormatDate(end))
	case start.Month() != end.Month():
		return fmt.Sprintf("%s - %s, %d", start.Format("January 2"), end.Format("January 2"), end.Year())
	default:
		return fmt.Sprintf("%s - %d, %d", start.Format("January 2"), end.Day(), end.Year())
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
