// Package repo implements the entity repositories over the table store:
// habits, habit groups, and daily checks, together with the ordering engine,
// the derived selectors, and the weekly aggregator. Every function takes the
// store explicitly; there is no ambient global state.
package repo

import (
	"sort"
	"time"

	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
	apperrors "github.com/IlyaKukarkin/bee-bloom/internal/errors"
	"github.com/IlyaKukarkin/bee-bloom/internal/models"
	"github.com/IlyaKukarkin/bee-bloom/internal/store"
)

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// habitByID returns the habit when it exists and is not soft-deleted.
func habitByID(s *store.Store, id string) (models.HabitRow, error) {
	cells, ok := s.GetRow(constants.TableHabits, id)
	if !ok {
		return models.HabitRow{}, apperrors.NotFoundf("habit %s", id)
	}
	h := models.HabitFromCells(id, cells)
	if h.Deleted() {
		return models.HabitRow{}, apperrors.NotFoundf("habit %s is deleted", id)
	}
	return h, nil
}

func groupByID(s *store.Store, id string) (models.HabitGroupRow, error) {
	cells, ok := s.GetRow(constants.TableGroups, id)
	if !ok {
		return models.HabitGroupRow{}, apperrors.NotFoundf("habit group %s", id)
	}
	return models.GroupFromCells(id, cells), nil
}

// activeHabits returns all non-deleted habits, unsorted.
func activeHabits(s *store.Store) []models.HabitRow {
	table := s.GetTable(constants.TableHabits)
	habits := make([]models.HabitRow, 0, len(table))
	for id, cells := range table {
		h := models.HabitFromCells(id, cells)
		if !h.Deleted() {
			habits = append(habits, h)
		}
	}
	return habits
}

func allGroups(s *store.Store) []models.HabitGroupRow {
	table := s.GetTable(constants.TableGroups)
	groups := make([]models.HabitGroupRow, 0, len(table))
	for id, cells := range table {
		groups = append(groups, models.GroupFromCells(id, cells))
	}
	return groups
}

// sortByOrder sorts habits by order; equal orders tie-break on createdAt
// ascending, then id, so reads stay deterministic even after a crash left
// duplicate order values.
func sortByOrder(habits []models.HabitRow) {
	sort.Slice(habits, func(i, j int) bool {
		if habits[i].Order != habits[j].Order {
			return habits[i].Order < habits[j].Order
		}
		if habits[i].CreatedAt != habits[j].CreatedAt {
			return habits[i].CreatedAt < habits[j].CreatedAt
		}
		return habits[i].ID < habits[j].ID
	})
}

func sortGroupsByOrder(groups []models.HabitGroupRow) {
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Order != groups[j].Order {
			return groups[i].Order < groups[j].Order
		}
		if groups[i].CreatedAt != groups[j].CreatedAt {
			return groups[i].CreatedAt < groups[j].CreatedAt
		}
		return groups[i].ID < groups[j].ID
	})
}

// clampIndex limits a target index to the insertable range of a slice of
// length n.
func clampIndex(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}
