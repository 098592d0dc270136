package utils

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used by every inventory table.
const DateLayout = "2006-01-02"

var ErrInvalidDateRange = errors.New("check-out must be after check-in")

// ParseDate parses a "YYYY-MM-DD" string as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NightsBetween counts the date increments in [checkIn, checkOut).
func NightsBetween(checkIn, checkOut time.Time) int {
	in := truncateDay(checkIn)
	out := truncateDay(checkOut)
	return int(out.Sub(in).Hours() / 24)
}

// StayDates lists every night of the half-open range [checkIn, checkOut).
func StayDates(checkIn, checkOut time.Time) []string {
	var dates []string
	end := truncateDay(checkOut)
	for d := truncateDay(checkIn); d.Before(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, FormatDate(d))
	}
	return dates
}

// ParseStay parses both ends of a stay and checks that it spans at least one night.
func ParseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return in, out, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
