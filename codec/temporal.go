// Package codec parses and formats the textual temporal representations
// accepted by the temporal kinds: RFC3339 date-times, naive date-times,
// calendar dates, clock times, and durations.
package codec

import (
	"errors"
	"fmt"
	"time"
)

const (
	layoutDate  = "2006-01-02"
	layoutNaive = "2006-01-02T15:04:05"
	layoutClock = "15:04:05"
)

// ParseRFC3339 parses a zoned date-time string.
func ParseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("codec: invalid RFC3339 date-time %q: %w", s, err)
	}
	return t, nil
}

// FormatRFC3339 renders t canonically, preserving sub-second precision only
// when present.
func FormatRFC3339(t time.Time) string {
	if t.Nanosecond() == 0 {
		return t.Format(time.RFC3339)
	}
	return t.Format(time.RFC3339Nano)
}

// ParseNaiveDateTime parses a date-time without a zone designator. The result
// is anchored to UTC.
func ParseNaiveDateTime(s string) (time.Time, error) {
	t, err := time.Parse(layoutNaive, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("codec: invalid naive date-time %q: %w", s, err)
	}
	return t, nil
}

// ParseDate parses a calendar date; the result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(layoutDate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("codec: invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseClock parses a clock time ("15:04:05" or "15:04"); the date component
// of the result is the zero day.
func ParseClock(s string) (time.Time, error) {
	if t, err := time.Parse(layoutClock, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("codec: invalid clock time %q: %w", s, err)
	}
	return t, nil
}

// ParseDuration parses a Go duration string ("1h30m", "250ms").
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, errors.New("codec: empty duration")
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("codec: invalid duration %q: %w", s, err)
	}
	return d, nil
}

// FormatDate renders the date component of t.
func FormatDate(t time.Time) string { return t.Format(layoutDate) }

// FormatClock renders the clock component of t.
func FormatClock(t time.Time) string { return t.Format(layoutClock) }

// FormatNaiveDateTime renders t without a zone designator.
func FormatNaiveDateTime(t time.Time) string { return t.Format(layoutNaive) }
