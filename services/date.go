package services

import (
	"strings"
	"time"

	"lexium/models"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// ParseDate parses a date string in the HTML5 date input format (YYYY-MM-DD)
func ParseDate(dateStr string) (time.Time, error) {
	parsedTime, err := time.Parse(DateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, invalid("date", "invalid date format: expected YYYY-MM-DD")
	}
	return parsedTime, nil
}

// ParseOptionalDate returns nil for an empty string
func ParseOptionalDate(dateStr string) (*time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return nil, nil
	}
	d, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseMonth parses YYYY-MM and returns the first day of that month.
// Anything unparsable falls back to the month containing now.
func ParseMonth(value string, now time.Time) time.Time {
	if m, err := time.Parse(MonthLayout, strings.TrimSpace(value)); err == nil {
		return m
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ParseTime parses a wall-clock time given as HH:MM or HH:MM:SS
func ParseTime(field, value string) (models.TimeOfDay, error) {
	t, err := models.ParseTimeOfDay(value)
	if err != nil {
		return 0, invalid(field, "invalid time: expected HH:MM or HH:MM:SS")
	}
	return t, nil
}
