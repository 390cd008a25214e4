package cli

import (
	"fmt"
	"strings"

	"github.com/IlyaKukarkin/bee-bloom/internal/config"
	apperrors "github.com/IlyaKukarkin/bee-bloom/internal/errors"
	"github.com/IlyaKukarkin/bee-bloom/internal/models"
	"github.com/IlyaKukarkin/bee-bloom/internal/persist"
	"github.com/IlyaKukarkin/bee-bloom/internal/repo"
	"github.com/IlyaKukarkin/bee-bloom/internal/store"
)

// Context carries the shared application state into every command's Run.
type Context struct {
	Store     *store.Store
	Persister persist.Persister
	Config    config.Config
}

// resolveHabit accepts a habit id or a (case-insensitive) title and returns
// the matching active habit. An ambiguous title is an error.
func resolveHabit(ctx *Context, ref string) (models.HabitRow, error) {
	if habit, err := repo.GetHabit(ctx.Store, ref); err == nil {
		return habit, nil
	}

	target := strings.ToLower(strings.TrimSpace(ref))
	var matches []models.HabitRow
	for _, h := range repo.ActiveHabits(ctx.Store) {
		if strings.ToLower(h.Title) == target {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.HabitRow{}, apperrors.NotFoundf("no habit matching %q", ref)
	default:
		return models.HabitRow{}, fmt.Errorf("%d habits titled %q, use the id instead", len(matches), ref)
	}
}

// resolveGroup accepts a group id or title and returns the matching group.
func resolveGroup(ctx *Context, ref string) (models.HabitGroupRow, error) {
	if group, err := repo.GetGroup(ctx.Store, ref); err == nil {
		return group, nil
	}
	if group, ok := repo.FindGroupByTitle(ctx.Store, ref); ok {
		return group, nil
	}
	return models.HabitGroupRow{}, apperrors.NotFoundf("no group matching %q", ref)
}

// scopeIndex returns the habit's current position within its ordering scope.
func scopeIndex(ctx *Context, habit models.HabitRow) int {
	index := 0
	for _, bucket := range repo.GroupedHabitsView(ctx.Store) {
		key := ""
		if bucket.Group != nil {
			key = bucket.Group.ID
		}
		if key != habit.GroupKey() {
			continue
		}
		for i, h := range bucket.Habits {
			if h.ID == habit.ID {
				return i
			}
		}
	}
	return index
}
