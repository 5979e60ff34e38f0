// Package datetime provides date and time utility functions anchored to the
// UTC calendar months that all aggregation and projection math runs on.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/okonta/poultry-breakeven/pkg/constants"
)

const (
	// MonthKeyLayout is the normalized "YYYY-MM" month key format.
	MonthKeyLayout = constants.MonthKeyLayout

	// DateLayout is the bare calendar date format accepted in records.
	DateLayout = constants.DateLayout
)

// recordDateLayouts are the formats accepted for record dates, tried in
// order. Bare dates are interpreted as UTC so callers in any zone bucket a
// given calendar date identically.
var recordDateLayouts = []string{
	DateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseRecordDate parses a record date that may be a bare calendar date or a
// full timestamp, returning the instant in UTC.
func ParseRecordDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range recordDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// MonthKey normalizes a record date into its UTC "YYYY-MM" month key. Two
// dates falling in the same UTC calendar month always produce the same key
// regardless of the caller's local zone.
func MonthKey(value string) (string, error) {
	t, err := ParseRecordDate(value)
	if err != nil {
		return "", err
	}
	return t.Format(MonthKeyLayout), nil
}

// MonthKeyOf returns the UTC month key for a time value.
func MonthKeyOf(t time.Time) string {
	return t.UTC().Format(MonthKeyLayout)
}

// MonthStart returns midnight UTC on the first day of t's UTC month.
func MonthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// WindowCutoff returns the first day of the UTC month months-1 months before
// asOf's month, i.e. the inclusive start of a trailing window that contains
// the current partial month.
func WindowCutoff(asOf time.Time, months int) time.Time {
	return MonthStart(asOf).AddDate(0, -(months - 1), 0)
}

// MonthsBetween returns the exact number of calendar months from the first
// month key to the second. The result is negative when second precedes first.
func MonthsBetween(firstKey, secondKey string) (int, error) {
	first, err := time.Parse(MonthKeyLayout, firstKey)
	if err != nil {
		return 0, fmt.Errorf("invalid month key %q: %w", firstKey, err)
	}
	second, err := time.Parse(MonthKeyLayout, secondKey)
	if err != nil {
		return 0, fmt.Errorf("invalid month key %q: %w", secondKey, err)
	}
	years := second.Year() - first.Year()
	months := int(second.Month()) - int(first.Month())
	return years*constants.MonthsPerYear + months, nil
}

// NextMonthKey returns the month key immediately after the given key.
func NextMonthKey(key string) (string, error) {
	t, err := time.Parse(MonthKeyLayout, key)
	if err != nil {
		return "", fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return t.AddDate(0, 1, 0).Format(MonthKeyLayout), nil
}

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}
