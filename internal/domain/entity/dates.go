package entity

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of every date field (HTML date input value)
const DateLayout = "2006-01-02"

// form dates are parsed in UTC, so every day is this long
const secondsPerDay = 24 * 60 * 60

// FormatDate renders t as a form date in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a form date. Surrounding whitespace is ignored.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// InclusiveDays counts the calendar days from start to end, both included.
// The result is never below 1, including when end precedes start or either
// date cannot be parsed.
func InclusiveDays(start, end string) int {
	s, err := ParseDate(start)
	if err != nil {
		return 1
	}
	e, err := ParseDate(end)
	if err != nil {
		return 1
	}

	days := (e.Unix()-s.Unix())/secondsPerDay + 1
	if days < 1 {
		return 1
	}
	return int(days)
}
