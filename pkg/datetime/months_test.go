package datetime

import (
	"testing"
	"time"
)

func TestMonthKey(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected string
	}{
		{
			name:     "Bare calendar date",
			date:     "2024-03-15",
			expected: "2024-03",
		},
		{
			name:     "End of month timestamp",
			date:     "2024-03-15T23:59:59Z",
			expected: "2024-03",
		},
		{
			name:     "Start of month timestamp",
			date:     "2024-03-01T00:00:00Z",
			expected: "2024-03",
		},
		{
			name:     "Offset timestamp normalizes to UTC month",
			date:     "2024-03-31T22:00:00-05:00",
			expected: "2024-04",
		},
		{
			name:     "Timestamp without zone",
			date:     "2024-12-31T10:30:00",
			expected: "2024-12",
		},
		{
			name:     "Surrounding whitespace",
			date:     "  2024-07-04  ",
			expected: "2024-07",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := MonthKey(tt.date)
			if err != nil {
				t.Fatalf("MonthKey(%q) error = %v", tt.date, err)
			}
			if key != tt.expected {
				t.Errorf("MonthKey(%q) = %q, expected %q", tt.date, key, tt.expected)
			}
		})
	}
}

func TestMonthKeyInvalid(t *testing.T) {
	for _, date := range []string{"", "not-a-date", "2024-13-40", "15/03/2024"} {
		if _, err := MonthKey(date); err == nil {
			t.Errorf("MonthKey(%q) expected error but got none", date)
		}
	}
}

func TestWindowCutoff(t *testing.T) {
	asOf := MustParseTime(time.RFC3339, "2025-06-15T12:30:00Z")

	tests := []struct {
		name     string
		months   int
		expected string
	}{
		{
			name:     "Three month window includes current partial month",
			months:   3,
			expected: "2025-04-01",
		},
		{
			name:     "Six month window",
			months:   6,
			expected: "2025-01-01",
		},
		{
			name:     "Twelve month window crosses year boundary",
			months:   12,
			expected: "2024-07-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cutoff := WindowCutoff(asOf, tt.months)
			if got := cutoff.Format(DateLayout); got != tt.expected {
				t.Errorf("WindowCutoff(%d) = %s, expected %s", tt.months, got, tt.expected)
			}
			if cutoff.Location() != time.UTC {
				t.Errorf("WindowCutoff(%d) not in UTC", tt.months)
			}
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		second   string
		expected int
	}{
		{name: "Same month", first: "2025-03", second: "2025-03", expected: 0},
		{name: "Adjacent months", first: "2025-01", second: "2025-02", expected: 1},
		{name: "Across year boundary", first: "2024-11", second: "2025-02", expected: 3},
		{name: "Reversed is negative", first: "2025-02", second: "2024-11", expected: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gap, err := MonthsBetween(tt.first, tt.second)
			if err != nil {
				t.Fatalf("MonthsBetween(%q, %q) error = %v", tt.first, tt.second, err)
			}
			if gap != tt.expected {
				t.Errorf("MonthsBetween(%q, %q) = %d, expected %d", tt.first, tt.second, gap, tt.expected)
			}
		})
	}
}

func TestNextMonthKey(t *testing.T) {
	next, err := NextMonthKey("2024-12")
	if err != nil {
		t.Fatalf("NextMonthKey() error = %v", err)
	}
	if next != "2025-01" {
		t.Errorf("NextMonthKey(2024-12) = %s, expected 2025-01", next)
	}
}
