// Package calendar provides the date arithmetic behind the roster grid:
// enumerating the days of a window, weekend classification and the
// locale-invariant labels used for grid headers.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for shift keys.
const DateLayout = "2006-01-02"

// ErrInvalidRange is returned by DateRangeStrict when start is after end.
var ErrInvalidRange = errors.New("invalid date range")

var monthNames = [...]string{
	"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
	"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER",
}

var dayNames = [...]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD) into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDate renders t as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateRange enumerates every calendar day from start to end inclusive, in
// ascending order. A start after end yields an empty slice.
func DateRange(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	if start.After(end) {
		return []time.Time{}
	}
	dates := make([]time.Time, 0, Days(start, end)+1)
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		dates = append(dates, cur)
	}
	return dates
}

// DateRangeStrict is DateRange but reports ErrInvalidRange when start is
// after end.
func DateRangeStrict(start, end time.Time) ([]time.Time, error) {
	if Day(start).After(Day(end)) {
		return nil, fmt.Errorf("%s is after %s: %w", FormatDate(start), FormatDate(end), ErrInvalidRange)
	}
	return DateRange(start, end), nil
}

// Days returns the number of whole days from start to end. Negative when end
// precedes start.
func Days(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours() / 24)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// MonthLabel returns the full upper-case English month name, e.g. "MARCH".
func MonthLabel(t time.Time) string {
	return monthNames[t.Month()-1]
}

// DayLabel returns the three-letter upper-case day abbreviation, e.g. "MON".
func DayLabel(t time.Time) string {
	return dayNames[t.Weekday()]
}

// DayNumber returns the zero-padded day of month, e.g. "07".
func DayNumber(t time.Time) string {
	return fmt.Sprintf("%02d", t.Day())
}

// MonthSpan is a run of consecutive dates that share a month.
type MonthSpan struct {
	Label string
	Year  int
	Count int
}

// MonthSpans groups contiguous same-month dates, in order. Used for the
// month header row that spans several day columns.
func MonthSpans(dates []time.Time) []MonthSpan {
	var spans []MonthSpan
	for i, d := range dates {
		if i > 0 && d.Month() == dates[i-1].Month() && d.Year() == dates[i-1].Year() {
			spans[len(spans)-1].Count++
			continue
		}
		spans = append(spans, MonthSpan{Label: MonthLabel(d), Year: d.Year(), Count: 1})
	}
	return spans
}
