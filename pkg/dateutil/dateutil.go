package dateutil

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the canonical day-granularity wire format.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDateFormat is returned when a string does not parse as YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidRange is returned when a range's end date precedes its start date.
	ErrInvalidRange = errors.New("invalid date range: end before start")
)

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}

// UTCDay maps a time to the UTC midnight of its calendar date, regardless of
// the time's own location. Day values originating in different locations
// compare and query consistently once normalized through here.
func UTCDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// ParseDate parses a YYYY-MM-DD string into a start-of-day time in UTC.
// Impossible calendar dates (e.g. 2025-02-30) are rejected.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, dateStr)
	}
	return t, nil
}

// FormatDate formats a date as YYYY-MM-DD. Round-trips with ParseDate for
// any valid calendar date.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// WeekOf returns the 7 dates of the week containing the given date,
// ordered Sunday through Saturday.
func WeekOf(date time.Time) [7]time.Time {
	sunday := StartOfDay(date.AddDate(0, 0, -int(date.Weekday())))

	var week [7]time.Time
	for i := range week {
		week[i] = sunday.AddDate(0, 0, i)
	}
	return week
}

// WeekdayKey returns the lowercase weekday name for the given date,
// e.g. "sunday".."saturday".
func WeekdayKey(date time.Time) string {
	switch date.Weekday() {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	default:
		return "saturday"
	}
}

// EachDate returns every date from start through end inclusive, at day
// granularity. Returns ErrInvalidRange when end precedes start.
func EachDate(start, end time.Time) ([]time.Time, error) {
	start = StartOfDay(start)
	end = StartOfDay(end)

	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s .. %s", ErrInvalidRange, FormatDate(start), FormatDate(end))
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// DaysBetween returns the inclusive number of days from start through end.
// Returns 0 when end precedes start.
func DaysBetween(start, end time.Time) int {
	start = StartOfDay(start)
	end = StartOfDay(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
