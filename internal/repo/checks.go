package repo

import (
	"time"

	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
	apperrors "github.com/IlyaKukarkin/bee-bloom/internal/errors"
	"github.com/IlyaKukarkin/bee-bloom/internal/models"
	"github.com/IlyaKukarkin/bee-bloom/internal/store"
	"github.com/IlyaKukarkin/bee-bloom/internal/utils"
)

// ToggleDailyCheck flips the completion state for (habitID, date), creating
// the row with completed=true when absent, and returns the new state. The
// date must be today or yesterday relative to now; users may retroactively
// correct yesterday, never older days. Fails with NotFound for missing or
// soft-deleted habits.
func ToggleDailyCheck(s *store.Store, habitID, date string, now time.Time) (bool, error) {
	if !utils.IsTodayOrYesterday(date, now) {
		return false, apperrors.InvalidDatef("cannot toggle check for %s, only today or yesterday allowed", date)
	}

	if _, err := habitByID(s, habitID); err != nil {
		return false, err
	}

	key := models.CheckKey{HabitID: habitID, Date: date}

	completed := true
	if cells, ok := s.GetRow(constants.TableChecks, key.String()); ok {
		completed = !models.CheckFromCells(key.String(), cells).Completed
	}

	check := models.DailyCheckRow{
		HabitID:   habitID,
		Date:      date,
		Completed: completed,
		UpdatedAt: timestamp(time.Now()),
	}
	s.SetRow(constants.TableChecks, key.String(), check.Cells())

	return completed, nil
}

// DailyCheckFor returns the check row for (habitID, date), if present.
func DailyCheckFor(s *store.Store, habitID, date string) (models.DailyCheckRow, bool) {
	key := models.CheckKey{HabitID: habitID, Date: date}
	cells, ok := s.GetRow(constants.TableChecks, key.String())
	if !ok {
		return models.DailyCheckRow{}, false
	}
	return models.CheckFromCells(key.String(), cells), true
}

// WeeklyChecks returns exactly seven check rows for the Monday–Sunday week
// containing start, in weekday order. Absent days are synthesized as
// incomplete with an empty UpdatedAt so callers can index by weekday
// position unconditionally.
func WeeklyChecks(s *store.Store, habitID string, start time.Time) []models.DailyCheckRow {
	days := utils.WeekStartingMonday(start)
	checks := make([]models.DailyCheckRow, 0, len(days))
	for _, date := range days {
		if check, ok := DailyCheckFor(s, habitID, date); ok {
			checks = append(checks, check)
			continue
		}
		checks = append(checks, models.DailyCheckRow{
			HabitID: habitID,
			Date:    date,
		})
	}
	return checks
}

// TodayChecks returns today's check rows keyed by habit id.
func TodayChecks(s *store.Store, now time.Time) map[string]models.DailyCheckRow {
	today := utils.TodayKey(now)
	out := make(map[string]models.DailyCheckRow)
	for rowID, cells := range s.GetTable(constants.TableChecks) {
		check := models.CheckFromCells(rowID, cells)
		if check.Date == today {
			out[check.HabitID] = check
		}
	}
	return out
}
