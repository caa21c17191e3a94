package util

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the ISO calendar date form used everywhere dates are persisted.
	DateLayout = "2006-01-02"
	// TimestampLayout is the persisted form of full timestamps.
	TimestampLayout = "2006-01-02 15:04:05"
)

// DateFormatError reports a date or timestamp string that does not match the
// expected layout.
type DateFormatError struct {
	Value  string
	Layout string
}

// Error implements the error interface.
func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date %q, expected layout %s", e.Value, e.Layout)
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, &DateFormatError{Value: value, Layout: DateLayout}
	}

	return t, nil
}

// FormatDate formats a time as an ISO calendar date (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTimestamp parses a full timestamp (YYYY-MM-DD HH:MM:SS).
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, value)
	if err != nil {
		return time.Time{}, &DateFormatError{Value: value, Layout: TimestampLayout}
	}

	return t, nil
}

// FormatTimestamp formats a time as a full timestamp (YYYY-MM-DD HH:MM:SS).
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// DaysUntil returns the number of whole calendar days from today until date.
// The result is negative when the date is in the past. Both arguments are
// truncated to their calendar day first, so time-of-day never shifts the count.
func DaysUntil(date, today time.Time) int {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := today.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)

	return int(a.Sub(b).Hours() / 24)
}
