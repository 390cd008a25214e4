package repo

import (
	"testing"

	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
	"github.com/IlyaKukarkin/bee-bloom/internal/models"
	"github.com/IlyaKukarkin/bee-bloom/internal/store"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func seedGroup(s *store.Store, id, title string, order int) {
	s.SetRow(constants.TableGroups, id, models.HabitGroupRow{
		ID:        id,
		Title:     title,
		Order:     order,
		CreatedAt: "2023-01-01T00:00:00Z",
	}.Cells())
}

func seedHabit(s *store.Store, id string, groupID *string, order int, createdAt string) {
	s.SetRow(constants.TableHabits, id, models.HabitRow{
		ID:           id,
		Title:        id,
		Color:        "#3c7c5a",
		GroupID:      groupID,
		Order:        order,
		CreatedAt:    createdAt,
		WeeklyTarget: 7,
	}.Cells())
}

func seedCheck(s *store.Store, habitID, date string, completed bool) {
	key := models.CheckKey{HabitID: habitID, Date: date}
	s.SetRow(constants.TableChecks, key.String(), models.DailyCheckRow{
		HabitID:   habitID,
		Date:      date,
		Completed: completed,
		UpdatedAt: "2023-01-02T08:00:00Z",
	}.Cells())
}

func mustHabit(t *testing.T, s *store.Store, id string) models.HabitRow {
	t.Helper()
	cells, ok := s.GetRow(constants.TableHabits, id)
	if !ok {
		t.Fatalf("habit %s not found", id)
	}
	return models.HabitFromCells(id, cells)
}

func scopeOrders(t *testing.T, s *store.Store, groupID *string) map[string]int {
	t.Helper()
	key := ""
	if groupID != nil {
		key = *groupID
	}
	orders := make(map[string]int)
	for _, h := range scopeHabits(s, key, "") {
		orders[h.ID] = h.Order
	}
	return orders
}
