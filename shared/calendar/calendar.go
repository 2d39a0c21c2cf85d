// Package calendar works with whole calendar days.
//
// A day is represented as a time.Time at midnight UTC so two days compare equal
// regardless of the zone they were parsed in. Ranges are half-open: [start, end)
// covers every night from start up to but excluding end, so the check-out day is
// never consumed.
package calendar

import (
	"fmt"
	"time"

	"stay/shared/constant"
	"stay/shared/failure"
)

// Day truncates t to its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a calendar day.
func ParseDay(value string) (time.Time, error) {
	t, err := time.Parse(constant.DayFormat, value)
	if err != nil {
		return time.Time{}, failure.InvalidRange(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value)) //nolint:wrapcheck
	}

	return t, nil
}

// Format renders a calendar day as YYYY-MM-DD.
func Format(day time.Time) string {
	return Day(day).Format(constant.DayFormat)
}

// ParseRange parses and validates a check-in/check-out pair.
func ParseRange(start, end string) (time.Time, time.Time, error) {
	from, err := ParseDay(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	to, err := ParseDay(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if err := ValidateRange(from, to); err != nil {
		return time.Time{}, time.Time{}, err
	}

	return from, to, nil
}

// ValidateRange fails with InvalidRange when end is not strictly after start.
func ValidateRange(start, end time.Time) error {
	if !Day(end).After(Day(start)) {
		return failure.InvalidRange("check-out must be after check-in") //nolint:wrapcheck
	}

	return nil
}

// Nights is the number of days in [start, end).
func Nights(start, end time.Time) int {
	n := int(Day(end).Sub(Day(start)).Hours() / constant.HoursPerDay)
	if n < 0 {
		return 0
	}

	return n
}

// Days lists every day in [start, end).
func Days(start, end time.Time) []time.Time {
	nights := Nights(start, end)
	days := make([]time.Time, 0, nights)

	for day := Day(start); day.Before(Day(end)); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}

	return days
}

// Contains reports whether day lies in [start, end).
func Contains(start, end, day time.Time) bool {
	d := Day(day)

	return !d.Before(Day(start)) && d.Before(Day(end))
}

// ContainsInclusive reports whether day lies in [start, end].
func ContainsInclusive(start, end, day time.Time) bool {
	d := Day(day)

	return !d.Before(Day(start)) && !d.After(Day(end))
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return Day(aStart).Before(Day(bEnd)) && Day(bStart).Before(Day(aEnd))
}

// IsWeekend reports whether day is a Saturday or Sunday.
func IsWeekend(day time.Time) bool {
	wd := Day(day).Weekday()

	return wd == time.Saturday || wd == time.Sunday
}
