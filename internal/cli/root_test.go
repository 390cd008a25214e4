package cli

import (
	"errors"
	"testing"

	"github.com/IlyaKukarkin/bee-bloom/internal/config"
	apperrors "github.com/IlyaKukarkin/bee-bloom/internal/errors"
	"github.com/IlyaKukarkin/bee-bloom/internal/repo"
	"github.com/IlyaKukarkin/bee-bloom/internal/store"
)

func testContext(t *testing.T) *Context {
	t.Helper()
	return &Context{
		Store:  store.New(),
		Config: config.Default(),
	}
}

func TestResolveHabit(t *testing.T) {
	ctx := testContext(t)

	id, err := repo.CreateHabit(ctx.Store, repo.CreateHabitInput{Title: "Drink water"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		ref  string
		ok   bool
	}{
		{"by id", id, true},
		{"by title", "Drink water", true},
		{"title case-insensitive", "drink WATER", true},
		{"unknown", "floss", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			habit, err := resolveHabit(ctx, tc.ref)
			if tc.ok {
				if err != nil {
					t.Fatalf("err = %v", err)
				}
				if habit.ID != id {
					t.Errorf("resolved %s, want %s", habit.ID, id)
				}
				return
			}
			if !errors.Is(err, apperrors.ErrNotFound) {
				t.Errorf("err = %v, want not found", err)
			}
		})
	}
}

func TestResolveHabitAmbiguousTitle(t *testing.T) {
	ctx := testContext(t)

	for i := 0; i < 2; i++ {
		if _, err := repo.CreateHabit(ctx.Store, repo.CreateHabitInput{Title: "Read"}); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := resolveHabit(ctx, "Read"); err == nil {
		t.Error("expected error for ambiguous title")
	}
}

func TestResolveGroup(t *testing.T) {
	ctx := testContext(t)

	id, err := repo.CreateGroup(ctx.Store, repo.CreateGroupInput{Title: "Morning"})
	if err != nil {
		t.Fatal(err)
	}

	if group, err := resolveGroup(ctx, id); err != nil || group.ID != id {
		t.Errorf("by id: group = %+v, err = %v", group, err)
	}
	if group, err := resolveGroup(ctx, " morning "); err != nil || group.ID != id {
		t.Errorf("by title: group = %+v, err = %v", group, err)
	}
	if _, err := resolveGroup(ctx, "Evening"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("unknown: err = %v, want not found", err)
	}
}

func TestScopeIndex(t *testing.T) {
	ctx := testContext(t)

	ids := make([]string, 3)
	for i, title := range []string{"First", "Second", "Third"} {
		id, err := repo.CreateHabit(ctx.Store, repo.CreateHabitInput{Title: title})
		if err != nil {
			t.Fatal(err)
		}
		ids[i] = id
	}

	for want, id := range ids {
		habit, err := repo.GetHabit(ctx.Store, id)
		if err != nil {
			t.Fatal(err)
		}
		if got := scopeIndex(ctx, habit); got != want {
			t.Errorf("scopeIndex(%s) = %d, want %d", id, got, want)
		}
	}
}
