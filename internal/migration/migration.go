// Package migration runs the one-shot data-shape migrations at store load.
// Migrations are observational and best-effort: an unexpected prior shape
// causes a logged skip, never an error, so startup is never blocked. A
// partially-applied prior migration therefore also skips; that risk is
// accepted in exchange for an app that always opens.
package migration

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
	"github.com/IlyaKukarkin/bee-bloom/internal/logger"
	"github.com/IlyaKukarkin/bee-bloom/internal/models"
	"github.com/IlyaKukarkin/bee-bloom/internal/store"
)

// Runner gates the migrations behind a once-per-store-lifetime latch. The
// latch is per process instance, not per file: the idempotency checks inside
// each migration keep a second process (or a restart) safe.
type Runner struct {
	mu  sync.Mutex
	ran bool
}

// NewRunner creates a migration runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes all migrations once for this store instance. Subsequent calls
// are no-ops.
func (r *Runner) Run(s *store.Store) {
	r.mu.Lock()
	if r.ran {
		r.mu.Unlock()
		logger.Debug("migrations already ran for this store instance, skipping")
		return
	}
	r.ran = true
	r.mu.Unlock()

	GroupsAndOrdering(s)
	WeeklyTarget(s)
}

// GroupsAndOrdering migrates legacy free-text habit group names into
// habitGroups rows plus groupId/order fields. Idempotent: a non-empty
// habitGroups table or any habit already carrying an order field means the
// migration has run (or the data is otherwise newer than this shape) and it
// skips.
func GroupsAndOrdering(s *store.Store) {
	if len(s.GetTable(constants.TableGroups)) > 0 {
		logger.Info("groups migration skipped", "reason", "habitGroups table not empty")
		return
	}

	habitsTable := s.GetTable(constants.TableHabits)
	for rowID, cells := range habitsTable {
		if _, ok := cells["order"]; ok {
			logger.Info("groups migration skipped", "reason", "habit already has order field", "habit", rowID)
			return
		}
	}

	// Bucket non-deleted habits by their trimmed legacy group name.
	habitsByGroup := make(map[string][]models.HabitRow)
	for rowID, cells := range habitsTable {
		habit := models.HabitFromCells(rowID, cells)
		if habit.Deleted() {
			continue
		}

		name := ""
		if legacy, ok := cells["group"].(string); ok {
			name = strings.TrimSpace(legacy)
		}
		habitsByGroup[name] = append(habitsByGroup[name], habit)
	}

	names := make([]string, 0, len(habitsByGroup))
	for name := range habitsByGroup {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	now := time.Now().UTC().Format(time.RFC3339Nano)

	s.Transaction(func() {
		groupIDs := make(map[string]string, len(names))
		for i, name := range names {
			group := models.HabitGroupRow{
				ID:        uuid.New().String(),
				Title:     name,
				Order:     i * constants.OrderStep,
				CreatedAt: now,
			}
			groupIDs[name] = group.ID
			s.SetRow(constants.TableGroups, group.ID, group.Cells())
		}

		for name, habits := range habitsByGroup {
			sort.Slice(habits, func(i, j int) bool {
				return habits[i].CreatedAt < habits[j].CreatedAt
			})

			for i, habit := range habits {
				partial := store.Row{"order": i * constants.OrderStep}
				if id, ok := groupIDs[name]; ok {
					partial["groupId"] = id
				}
				s.SetPartialRow(constants.TableHabits, habit.ID, partial)
				s.DelCell(constants.TableHabits, habit.ID, "group")
			}
		}
	})

	logger.Info("groups migration complete", "groups", len(names))
}

// WeeklyTarget backfills the weeklyTarget field on every non-deleted habit
// that is missing it. Idempotent by construction.
func WeeklyTarget(s *store.Store) {
	filled := 0
	s.Transaction(func() {
		for rowID, cells := range s.GetTable(constants.TableHabits) {
			if _, ok := cells["weeklyTarget"]; ok {
				continue
			}
			if models.HabitFromCells(rowID, cells).Deleted() {
				continue
			}
			s.SetCell(constants.TableHabits, rowID, "weeklyTarget", constants.WeeklyTargetDefault)
			filled++
		}
	})

	if filled > 0 {
		logger.Info("weekly target migration complete", "habits", filled)
	}
}
