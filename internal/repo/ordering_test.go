package repo

import (
	"errors"
	"testing"

	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
	apperrors "github.com/IlyaKukarkin/bee-bloom/internal/errors"
	"github.com/IlyaKukarkin/bee-bloom/internal/store"
)

func TestReorderHabitWithinGroup(t *testing.T) {
	s := store.New()
	seedHabit(s, "h-a", nil, 0, "2023-01-01T00:00:00Z")
	seedHabit(s, "h-b", nil, 10, "2023-01-01T01:00:00Z")

	if err := ReorderHabitWithinGroup(s, "h-b", 0); err != nil {
		t.Fatal(err)
	}

	orders := scopeOrders(t, s, nil)
	if orders["h-b"] != 0 || orders["h-a"] != constants.OrderStep {
		t.Errorf("orders = %v, want h-b:0 h-a:%d", orders, constants.OrderStep)
	}
}

func TestUngroupedCreateAndReorderFlow(t *testing.T) {
	s := store.New()

	a, err := CreateHabit(s, CreateHabitInput{Title: "Daily walk"})
	if err != nil {
		t.Fatal(err)
	}
	habitA := mustHabit(t, s, a)
	if habitA.Order != 0 || habitA.GroupID != nil || habitA.WeeklyTarget != 7 {
		t.Fatalf("habit A = %+v, want order 0, ungrouped, target 7", habitA)
	}

	b, err := CreateHabit(s, CreateHabitInput{Title: "Stretch"})
	if err != nil {
		t.Fatal(err)
	}
	if got := mustHabit(t, s, b).Order; got != constants.OrderStep {
		t.Fatalf("habit B order = %d, want %d", got, constants.OrderStep)
	}

	if err := ReorderHabitWithinGroup(s, b, 0); err != nil {
		t.Fatal(err)
	}
	if got := mustHabit(t, s, b).Order; got != 0 {
		t.Errorf("habit B order = %d, want 0", got)
	}
	if got := mustHabit(t, s, a).Order; got != constants.OrderStep {
		t.Errorf("habit A order = %d, want %d", got, constants.OrderStep)
	}
}

func TestReorderHabitClampsIndex(t *testing.T) {
	s := store.New()
	seedHabit(s, "h-a", nil, 0, "2023-01-01T00:00:00Z")
	seedHabit(s, "h-b", nil, 10, "2023-01-01T01:00:00Z")
	seedHabit(s, "h-c", nil, 20, "2023-01-01T02:00:00Z")

	tests := []struct {
		name    string
		habitID string
		index   int
		want    map[string]int
	}{
		{"negative clamps to front", "h-c", -5, map[string]int{"h-c": 0, "h-a": 10, "h-b": 20}},
		{"overflow clamps to back", "h-c", 99, map[string]int{"h-a": 0, "h-b": 10, "h-c": 20}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := ReorderHabitWithinGroup(s, tc.habitID, tc.index); err != nil {
				t.Fatal(err)
			}
			orders := scopeOrders(t, s, nil)
			for id, want := range tc.want {
				if orders[id] != want {
					t.Errorf("%s order = %d, want %d", id, orders[id], want)
				}
			}
		})
	}
}

func TestReorderDeletedHabit(t *testing.T) {
	s := store.New()
	seedHabit(s, "h-a", nil, 0, "2023-01-01T00:00:00Z")
	if err := DeleteHabit(s, "h-a"); err != nil {
		t.Fatal(err)
	}

	if err := ReorderHabitWithinGroup(s, "h-a", 0); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestReorderResequencesGappedScope(t *testing.T) {
	s := store.New()
	// Orders with gaps and a duplicate, as left by deletes or older writers.
	seedHabit(s, "h-a", nil, 30, "2023-01-01T00:00:00Z")
	seedHabit(s, "h-b", nil, 30, "2023-01-01T01:00:00Z")
	seedHabit(s, "h-c", nil, 70, "2023-01-01T02:00:00Z")

	if err := ReorderHabitWithinGroup(s, "h-c", 1); err != nil {
		t.Fatal(err)
	}

	orders := scopeOrders(t, s, nil)
	want := map[string]int{"h-a": 0, "h-c": 10, "h-b": 20}
	for id, w := range want {
		if orders[id] != w {
			t.Errorf("%s order = %d, want %d (full resequence to step multiples)", id, orders[id], w)
		}
	}
}

func TestMoveHabitToGroup(t *testing.T) {
	s := store.New()
	seedGroup(s, "g-src", "Source", 0)
	seedGroup(s, "g-dst", "Dest", 10)
	seedHabit(s, "h-a", strPtr("g-src"), 0, "2023-01-01T00:00:00Z")
	seedHabit(s, "h-b", strPtr("g-src"), 10, "2023-01-01T01:00:00Z")
	seedHabit(s, "h-c", strPtr("g-src"), 20, "2023-01-01T02:00:00Z")
	seedHabit(s, "h-x", strPtr("g-dst"), 0, "2023-01-01T03:00:00Z")
	seedHabit(s, "h-y", strPtr("g-dst"), 10, "2023-01-01T04:00:00Z")

	if err := MoveHabitToGroup(s, "h-b", strPtr("g-dst"), 1); err != nil {
		t.Fatal(err)
	}

	moved := mustHabit(t, s, "h-b")
	if moved.GroupID == nil || *moved.GroupID != "g-dst" {
		t.Fatalf("groupId = %v, want g-dst", moved.GroupID)
	}

	src := scopeOrders(t, s, strPtr("g-src"))
	if len(src) != 2 || src["h-a"] != 0 || src["h-c"] != constants.OrderStep {
		t.Errorf("source scope = %v, want contiguous h-a:0 h-c:10", src)
	}

	dst := scopeOrders(t, s, strPtr("g-dst"))
	want := map[string]int{"h-x": 0, "h-b": 10, "h-y": 20}
	for id, w := range want {
		if dst[id] != w {
			t.Errorf("dest %s order = %d, want %d", id, dst[id], w)
		}
	}
}

func TestMoveHabitToUngrouped(t *testing.T) {
	s := store.New()
	seedGroup(s, "g-a", "A", 0)
	seedHabit(s, "h-a", strPtr("g-a"), 0, "2023-01-01T00:00:00Z")
	seedHabit(s, "h-u", nil, 0, "2023-01-01T01:00:00Z")

	if err := MoveHabitToGroup(s, "h-a", nil, 0); err != nil {
		t.Fatal(err)
	}

	if got := mustHabit(t, s, "h-a").GroupID; got != nil {
		t.Fatalf("groupId = %v, want nil", *got)
	}
	orders := scopeOrders(t, s, nil)
	if orders["h-a"] != 0 || orders["h-u"] != constants.OrderStep {
		t.Errorf("ungrouped scope = %v, want h-a:0 h-u:10", orders)
	}
}

func TestMoveHabitUnknownTargetGroup(t *testing.T) {
	s := store.New()
	seedHabit(s, "h-a", nil, 0, "2023-01-01T00:00:00Z")

	if err := MoveHabitToGroup(s, "h-a", strPtr("nope"), 0); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
	if got := mustHabit(t, s, "h-a").GroupID; got != nil {
		t.Error("failed move must not change membership")
	}
}

func TestMoveHabitWithinSameGroup(t *testing.T) {
	s := store.New()
	seedGroup(s, "g-a", "A", 0)
	seedHabit(s, "h-a", strPtr("g-a"), 0, "2023-01-01T00:00:00Z")
	seedHabit(s, "h-b", strPtr("g-a"), 10, "2023-01-01T01:00:00Z")

	// Same-scope move degenerates to a reorder.
	if err := MoveHabitToGroup(s, "h-a", strPtr("g-a"), 1); err != nil {
		t.Fatal(err)
	}

	orders := scopeOrders(t, s, strPtr("g-a"))
	if orders["h-b"] != 0 || orders["h-a"] != constants.OrderStep {
		t.Errorf("orders = %v, want h-b:0 h-a:10", orders)
	}
}

func TestResequenceHabits(t *testing.T) {
	s := store.New()
	seedHabit(s, "h-a", nil, 12, "2023-01-01T00:00:00Z")
	seedHabit(s, "h-b", nil, 12, "2023-01-01T01:00:00Z")
	seedHabit(s, "h-c", nil, 55, "2023-01-01T02:00:00Z")

	ResequenceHabits(s, nil)

	orders := scopeOrders(t, s, nil)
	want := map[string]int{"h-a": 0, "h-b": 10, "h-c": 20}
	for id, w := range want {
		if orders[id] != w {
			t.Errorf("%s order = %d, want %d", id, orders[id], w)
		}
	}
}

func TestReorderGroup(t *testing.T) {
	s := store.New()
	seedGroup(s, "g-a", "A", 0)
	seedGroup(s, "g-b", "B", 10)
	seedGroup(s, "g-c", "C", 20)

	if err := ReorderGroup(s, "g-c", 0); err != nil {
		t.Fatal(err)
	}

	groups := OrderedGroups(s)
	got := make([]string, len(groups))
	for i, g := range groups {
		got[i] = g.ID
	}
	want := []string{"g-c", "g-a", "g-b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("group order = %v, want %v", got, want)
		}
	}
	for i, g := range groups {
		if g.Order != i*constants.OrderStep {
			t.Errorf("%s order = %d, want %d", g.ID, g.Order, i*constants.OrderStep)
		}
	}
}

func TestReorderGroupUnknown(t *testing.T) {
	s := store.New()
	if err := ReorderGroup(s, "nope", 0); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}
