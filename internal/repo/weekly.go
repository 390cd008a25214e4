package repo

import (
	"fmt"
	"math"
	"time"

	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
	"github.com/IlyaKukarkin/bee-bloom/internal/models"
	"github.com/IlyaKukarkin/bee-bloom/internal/store"
	"github.com/IlyaKukarkin/bee-bloom/internal/utils"
)

// WeeklyProgress is the derived completion summary for one habit over the
// Monday–Sunday week containing a reference instant.
type WeeklyProgress struct {
	Current         int
	Target          int
	Display         string
	PercentComplete float64
}

// HabitWeekly pairs a habit with its week of checks.
type HabitWeekly struct {
	Habit          models.HabitRow
	Checks         []models.DailyCheckRow
	CompletedCount int
}

// GroupWeekly is one group's worth of weekly data for the grouped weekly
// view.
type GroupWeekly struct {
	GroupTitle string
	Habits     []HabitWeekly
}

// GetWeeklyProgress computes {current, target, display, percent} for the
// week containing now. A missing or deleted habit degrades to the default
// target rather than failing: the weekly view may race a concurrent delete.
func GetWeeklyProgress(s *store.Store, habitID string, now time.Time) WeeklyProgress {
	target := constants.WeeklyTargetDefault
	if habit, err := habitByID(s, habitID); err == nil {
		target = habit.WeeklyTarget
	}

	current := 0
	for _, check := range WeeklyChecks(s, habitID, now) {
		if check.Completed {
			current++
		}
	}

	percent := 0.0
	if target > 0 {
		percent = math.Round(float64(current)/float64(target)*10000) / 100
	}

	return WeeklyProgress{
		Current:         current,
		Target:          target,
		Display:         fmt.Sprintf("%d/%d", current, target),
		PercentComplete: percent,
	}
}

// NextWeeklyBoundary returns the instant at which any live weekly view must
// recompute: the upcoming Monday midnight.
func NextWeeklyBoundary(now time.Time) time.Time {
	return utils.NextWeekBoundary(now)
}

// GetWeeklyData returns every active habit (in primary view order) with its
// week of checks for the week containing now.
func GetWeeklyData(s *store.Store, now time.Time) []HabitWeekly {
	habits := OrderedHabits(s)
	out := make([]HabitWeekly, 0, len(habits))
	for _, habit := range habits {
		out = append(out, habitWeekly(s, habit, now))
	}
	return out
}

// GetWeeklyDataByGroup returns weekly data bucketed like the primary grouped
// view, with a trailing "Ungrouped" bucket.
func GetWeeklyDataByGroup(s *store.Store, now time.Time) []GroupWeekly {
	var out []GroupWeekly
	for _, bucket := range GroupedHabitsView(s) {
		title := "Ungrouped"
		if bucket.Group != nil {
			title = bucket.Group.Title
		}
		gw := GroupWeekly{GroupTitle: title}
		for _, habit := range bucket.Habits {
			gw.Habits = append(gw.Habits, habitWeekly(s, habit, now))
		}
		out = append(out, gw)
	}
	return out
}

func habitWeekly(s *store.Store, habit models.HabitRow, now time.Time) HabitWeekly {
	checks := WeeklyChecks(s, habit.ID, now)
	completed := 0
	for _, c := range checks {
		if c.Completed {
			completed++
		}
	}
	return HabitWeekly{Habit: habit, Checks: checks, CompletedCount: completed}
}
