package repo

import (
	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
	"github.com/IlyaKukarkin/bee-bloom/internal/models"
	"github.com/IlyaKukarkin/bee-bloom/internal/store"
)

// The ordering engine. An ordering scope is the set of active habits sharing
// one groupId (or ungrouped). Order values are multiples of OrderStep;
// every reorder performs a full resequence of the touched scope, batched
// into one store transaction. A no-op reorder (same index) is the caller's
// responsibility to reject before calling in here.

// scopeHabits returns the active habits of one scope sorted by order,
// excluding excludeID when non-empty.
func scopeHabits(s *store.Store, scopeKey, excludeID string) []models.HabitRow {
	habits := make([]models.HabitRow, 0)
	for _, h := range activeHabits(s) {
		if h.GroupKey() == scopeKey && h.ID != excludeID {
			habits = append(habits, h)
		}
	}
	sortByOrder(habits)
	return habits
}

// ReorderHabitWithinGroup moves the habit to targetIndex inside its current
// scope and resequences the scope to 0,10,20,... in one mutation batch.
// Fails with NotFound for missing or soft-deleted habits.
func ReorderHabitWithinGroup(s *store.Store, habitID string, targetIndex int) error {
	habit, err := habitByID(s, habitID)
	if err != nil {
		return err
	}

	scope := scopeHabits(s, habit.GroupKey(), habitID)
	targetIndex = clampIndex(targetIndex, len(scope))
	seq := insertAt(scope, habit, targetIndex)

	s.Transaction(func() {
		resequence(s, seq)
	})
	return nil
}

// MoveHabitToGroup moves the habit into the target scope (nil for ungrouped)
// at targetIndex. The destination scope is resequenced with the habit in
// place; the source scope's remaining members are resequenced separately to
// close the gap.
func MoveHabitToGroup(s *store.Store, habitID string, targetGroupID *string, targetIndex int) error {
	habit, err := habitByID(s, habitID)
	if err != nil {
		return err
	}

	targetKey := ""
	if targetGroupID != nil && *targetGroupID != "" {
		if _, err := groupByID(s, *targetGroupID); err != nil {
			return err
		}
		targetKey = *targetGroupID
	}

	sourceKey := habit.GroupKey()

	s.Transaction(func() {
		if targetKey == "" {
			s.SetPartialRow(constants.TableHabits, habitID, store.Row{"groupId": nil})
		} else {
			s.SetCell(constants.TableHabits, habitID, "groupId", targetKey)
		}

		if sourceKey != targetKey {
			resequence(s, scopeHabits(s, sourceKey, habitID))
		}

		dest := scopeHabits(s, targetKey, habitID)
		idx := clampIndex(targetIndex, len(dest))
		resequence(s, insertAt(dest, habit, idx))
	})
	return nil
}

// ResequenceHabits rewrites the scope's order values to 0,10,20,... in
// their current relative order. Normalizes gaps and duplicate orders left by
// deletes or interrupted resequences; a no-op apart from renumbering.
func ResequenceHabits(s *store.Store, groupID *string) {
	scopeKey := ""
	if groupID != nil {
		scopeKey = *groupID
	}
	scope := scopeHabits(s, scopeKey, "")

	s.Transaction(func() {
		resequence(s, scope)
	})
}

func insertAt(habits []models.HabitRow, h models.HabitRow, index int) []models.HabitRow {
	out := make([]models.HabitRow, 0, len(habits)+1)
	out = append(out, habits[:index]...)
	out = append(out, h)
	out = append(out, habits[index:]...)
	return out
}

func resequence(s *store.Store, seq []models.HabitRow) {
	for i, h := range seq {
		s.SetCell(constants.TableHabits, h.ID, "order", i*constants.OrderStep)
	}
}
