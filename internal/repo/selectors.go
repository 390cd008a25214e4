package repo

import (
	"sort"

	"github.com/IlyaKukarkin/bee-bloom/internal/models"
	"github.com/IlyaKukarkin/bee-bloom/internal/store"
)

// GroupedHabits is one bucket of the primary grouped view. A nil Group is
// the trailing "Ungrouped" bucket.
type GroupedHabits struct {
	Group  *models.HabitGroupRow
	Habits []models.HabitRow
}

// OrderedHabits returns all active habits sorted by scope key then order.
func OrderedHabits(s *store.Store) []models.HabitRow {
	habits := activeHabits(s)
	sort.Slice(habits, func(i, j int) bool {
		if habits[i].GroupKey() != habits[j].GroupKey() {
			return habits[i].GroupKey() < habits[j].GroupKey()
		}
		if habits[i].Order != habits[j].Order {
			return habits[i].Order < habits[j].Order
		}
		return habits[i].CreatedAt < habits[j].CreatedAt
	})
	return habits
}

// OrderedGroups returns all groups sorted by their order value.
func OrderedGroups(s *store.Store) []models.HabitGroupRow {
	groups := allGroups(s)
	sortGroupsByOrder(groups)
	return groups
}

// GroupedHabitsView returns ordered groups with their ordered habits,
// followed by an ungrouped bucket. Empty buckets are omitted.
func GroupedHabitsView(s *store.Store) []GroupedHabits {
	var out []GroupedHabits

	for _, group := range OrderedGroups(s) {
		habits := scopeHabits(s, group.ID, "")
		if len(habits) == 0 {
			continue
		}
		g := group
		out = append(out, GroupedHabits{Group: &g, Habits: habits})
	}

	if ungrouped := scopeHabits(s, "", ""); len(ungrouped) > 0 {
		out = append(out, GroupedHabits{Habits: ungrouped})
	}

	return out
}
