package utils

import (
	"fmt"
	"time"

	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
)

// DayKey formats a time as a date key (YYYY-MM-DD) in its own location.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// TodayKey returns the date key for the given instant.
func TodayKey(now time.Time) string {
	return DayKey(now)
}

// YesterdayKey returns the date key for the calendar day before the given
// instant.
func YesterdayKey(now time.Time) string {
	return DayKey(now.AddDate(0, 0, -1))
}

// ParseDayKey parses a date key back into a midnight time in UTC.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// IsTodayOrYesterday reports whether the date key falls inside the backfill
// window relative to now.
func IsTodayOrYesterday(key string, now time.Time) bool {
	return key == TodayKey(now) || key == YesterdayKey(now)
}

// daysFromMonday returns how many calendar days now is past its week's
// Monday. Sunday counts as six days in, matching the ISO Monday-start week.
func daysFromMonday(now time.Time) int {
	wd := int(now.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}

// WeekStartingMonday returns the seven date keys for the Monday–Sunday week
// containing now, in weekday order. Callers can index by weekday position
// unconditionally.
func WeekStartingMonday(now time.Time) []string {
	back := daysFromMonday(now)
	keys := make([]string, 7)
	for i := 0; i < 7; i++ {
		keys[i] = DayKey(now.AddDate(0, 0, i-back))
	}
	return keys
}

// WeekStartKey returns the date key of the Monday of the week containing now.
func WeekStartKey(now time.Time) string {
	return DayKey(now.AddDate(0, 0, -daysFromMonday(now)))
}

// WeekEndKey returns the date key of the Sunday of the week containing now.
func WeekEndKey(now time.Time) string {
	return DayKey(now.AddDate(0, 0, 6-daysFromMonday(now)))
}

// NextMidnight returns the first midnight strictly after now, in now's
// location.
func NextMidnight(now time.Time) time.Time {
	next := now.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, now.Location())
}

// NextWeekBoundary returns the upcoming Monday midnight strictly after now.
// Live weekly views schedule their recomputation wake-up for this instant.
func NextWeekBoundary(now time.Time) time.Time {
	monday := now.AddDate(0, 0, 7-daysFromMonday(now))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())
}
