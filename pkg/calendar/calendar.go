// Package calendar handles the YYYY-MM-DD day strings used throughout the
// entity models. Day strings compare correctly as plain strings.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the wire and storage format of a day
const Layout = "2006-01-02"

// Parse reads a day string as midnight UTC
func Parse(day string) (time.Time, error) {
	t, err := time.Parse(Layout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", day, err)
	}
	return t, nil
}

// Format renders t as a day string
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Valid reports whether day is a well formed day string
func Valid(day string) bool {
	_, err := time.Parse(Layout, day)
	return err == nil
}

// Today returns the current local day
func Today() string {
	return Format(time.Now())
}

// Midnight truncates t to the start of its calendar day in UTC
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a day string by n days
func AddDays(day string, n int) (string, error) {
	t, err := Parse(day)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// SpanDays counts the days in the inclusive range [start, end].
// Malformed or reversed ranges count as zero.
func SpanDays(start, end string) int {
	s, err := Parse(start)
	if err != nil {
		return 0
	}
	e, err := Parse(end)
	if err != nil || e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
