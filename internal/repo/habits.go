package repo

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
	"github.com/IlyaKukarkin/bee-bloom/internal/models"
	"github.com/IlyaKukarkin/bee-bloom/internal/store"
	"github.com/IlyaKukarkin/bee-bloom/internal/validation"
)

// CreateHabitInput carries the user-supplied fields for a new habit. Exactly
// one of GroupID / GroupTitle may be set; GroupTitle resolves to an existing
// group by trimmed case-insensitive title, creating the group if absent.
type CreateHabitInput struct {
	Title       string
	Description string
	Color       string
	GroupID     *string
	GroupTitle  string
	// WeeklyTarget nil means the default of 7; set values are clamped to
	// [1,7], never rejected.
	WeeklyTarget *int
	// Palette overrides the default color rotation (config-driven).
	Palette []string
}

// CreateHabit validates the input, assigns id, creation timestamp, a color
// from the rotating palette, and the next order slot in the target scope,
// then writes the row. Returns the new habit id.
func CreateHabit(s *store.Store, in CreateHabitInput) (string, error) {
	title, err := validation.NormalizeTitle(in.Title)
	if err != nil {
		return "", err
	}
	description, err := validation.NormalizeDescription(in.Description)
	if err != nil {
		return "", err
	}

	groupID, err := resolveGroup(s, in.GroupID, in.GroupTitle)
	if err != nil {
		return "", err
	}

	target := constants.WeeklyTargetDefault
	if in.WeeklyTarget != nil {
		target = validation.ClampWeeklyTarget(*in.WeeklyTarget)
	}

	active := activeHabits(s)

	color := in.Color
	if color == "" {
		palette := in.Palette
		if len(palette) == 0 {
			palette = constants.DefaultPalette
		}
		color = palette[len(active)%len(palette)]
	}

	// Next order slot in the destination scope: max(existing)+step, or 0
	// when the scope is empty.
	maxOrder := -constants.OrderStep
	scopeKey := ""
	if groupID != nil {
		scopeKey = *groupID
	}
	for _, h := range active {
		if h.GroupKey() == scopeKey && h.Order > maxOrder {
			maxOrder = h.Order
		}
	}

	habit := models.HabitRow{
		ID:           uuid.New().String(),
		Title:        title,
		Description:  description,
		Color:        color,
		GroupID:      groupID,
		Order:        maxOrder + constants.OrderStep,
		CreatedAt:    timestamp(time.Now()),
		WeeklyTarget: target,
	}

	s.SetRow(constants.TableHabits, habit.ID, habit.Cells())
	return habit.ID, nil
}

// resolveGroup validates an explicit group id or resolves/creates a group by
// title. Returns nil for ungrouped.
func resolveGroup(s *store.Store, groupID *string, groupTitle string) (*string, error) {
	if groupID != nil && *groupID != "" {
		if _, err := groupByID(s, *groupID); err != nil {
			return nil, err
		}
		id := *groupID
		return &id, nil
	}

	if title, err := validation.NormalizeTitle(groupTitle); groupTitle != "" && err == nil {
		if existing, ok := FindGroupByTitle(s, title); ok {
			id := existing.ID
			return &id, nil
		}
		id, err := CreateGroup(s, CreateGroupInput{Title: title})
		if err != nil {
			return nil, err
		}
		return &id, nil
	}

	return nil, nil
}

// HabitUpdate carries a partial habit update. Nil fields are unchanged; a
// pointer to the empty string clears Description or moves the habit to
// ungrouped for GroupID.
type HabitUpdate struct {
	Title        *string
	Description  *string
	Color        *string
	GroupID      *string
	WeeklyTarget *int
}

// UpdateHabit applies a partial update. Changing GroupID here does not
// resequence either scope; MoveHabitToGroup is the ordering-aware path.
func UpdateHabit(s *store.Store, id string, upd HabitUpdate) error {
	if _, err := habitByID(s, id); err != nil {
		return err
	}

	partial := store.Row{}

	if upd.Title != nil {
		title, err := validation.NormalizeTitle(*upd.Title)
		if err != nil {
			return err
		}
		partial["title"] = title
	}
	if upd.Description != nil {
		description, err := validation.NormalizeDescription(*upd.Description)
		if err != nil {
			return err
		}
		if description == nil {
			partial["description"] = nil
		} else {
			partial["description"] = *description
		}
	}
	if upd.Color != nil {
		partial["color"] = *upd.Color
	}
	if upd.GroupID != nil {
		if *upd.GroupID == "" {
			partial["groupId"] = nil
		} else {
			if _, err := groupByID(s, *upd.GroupID); err != nil {
				return err
			}
			partial["groupId"] = *upd.GroupID
		}
	}
	if upd.WeeklyTarget != nil {
		partial["weeklyTarget"] = validation.ClampWeeklyTarget(*upd.WeeklyTarget)
	}

	if len(partial) == 0 {
		return nil
	}

	s.SetPartialRow(constants.TableHabits, id, partial)
	return nil
}

// DeleteHabit soft-deletes the habit and removes all of its check rows in
// one mutation batch. The habit's old order slot is left gapped; contiguity
// is restored by the next resequence of the scope.
func DeleteHabit(s *store.Store, id string) error {
	if _, err := habitByID(s, id); err != nil {
		return err
	}

	s.Transaction(func() {
		s.SetCell(constants.TableHabits, id, "deletedAt", timestamp(time.Now()))

		for _, rowID := range s.RowIDs(constants.TableChecks) {
			cells, ok := s.GetRow(constants.TableChecks, rowID)
			if !ok {
				continue
			}
			if models.CheckFromCells(rowID, cells).HabitID == id {
				s.DelRow(constants.TableChecks, rowID)
			}
		}
	})
	return nil
}

// GetHabit returns the habit, failing with NotFound for missing or
// soft-deleted ids.
func GetHabit(s *store.Store, id string) (models.HabitRow, error) {
	return habitByID(s, id)
}

// ActiveHabits returns all non-deleted habits sorted by creation time.
func ActiveHabits(s *store.Store) []models.HabitRow {
	habits := activeHabits(s)
	sortByCreatedAt(habits)
	return habits
}

func sortByCreatedAt(habits []models.HabitRow) {
	sort.Slice(habits, func(i, j int) bool {
		if habits[i].CreatedAt != habits[j].CreatedAt {
			return habits[i].CreatedAt < habits[j].CreatedAt
		}
		return habits[i].ID < habits[j].ID
	})
}
