package repo

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
	"github.com/IlyaKukarkin/bee-bloom/internal/models"
	"github.com/IlyaKukarkin/bee-bloom/internal/store"
	"github.com/IlyaKukarkin/bee-bloom/internal/validation"
)

// CreateGroupInput carries the user-supplied fields for a new habit group.
type CreateGroupInput struct {
	Title string
	Color string
}

// CreateGroup validates the title and writes a group row with the next order
// slot among groups. Returns the new group id.
func CreateGroup(s *store.Store, in CreateGroupInput) (string, error) {
	title, err := validation.NormalizeTitle(in.Title)
	if err != nil {
		return "", err
	}

	maxOrder := -constants.OrderStep
	for _, g := range allGroups(s) {
		if g.Order > maxOrder {
			maxOrder = g.Order
		}
	}

	group := models.HabitGroupRow{
		ID:        uuid.New().String(),
		Title:     title,
		Order:     maxOrder + constants.OrderStep,
		CreatedAt: timestamp(time.Now()),
	}
	if color := strings.TrimSpace(in.Color); color != "" {
		group.Color = &color
	}

	s.SetRow(constants.TableGroups, group.ID, group.Cells())
	return group.ID, nil
}

// GroupUpdate carries a partial group update. Nil fields are unchanged; a
// pointer to the empty string clears Color.
type GroupUpdate struct {
	Title *string
	Color *string
}

// UpdateGroup applies a partial update to the group row.
func UpdateGroup(s *store.Store, id string, upd GroupUpdate) error {
	if _, err := groupByID(s, id); err != nil {
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
	if upd.Color != nil {
		if color := strings.TrimSpace(*upd.Color); color != "" {
			partial["color"] = color
		} else {
			partial["color"] = nil
		}
	}

	if len(partial) == 0 {
		return nil
	}

	s.SetPartialRow(constants.TableGroups, id, partial)
	return nil
}

// DeleteGroup reassigns the group's habits to ungrouped and removes the
// group row, in one mutation batch. The freed habits keep their order
// values; the ungrouped read order falls back to the createdAt tie-break
// until the next resequence.
func DeleteGroup(s *store.Store, id string) error {
	if _, err := groupByID(s, id); err != nil {
		return err
	}

	s.Transaction(func() {
		for _, h := range activeHabits(s) {
			if h.GroupKey() == id {
				s.SetPartialRow(constants.TableHabits, h.ID, store.Row{"groupId": nil})
			}
		}
		s.DelRow(constants.TableGroups, id)
	})
	return nil
}

// GetGroup returns the group row, failing with NotFound when missing.
func GetGroup(s *store.Store, id string) (models.HabitGroupRow, error) {
	return groupByID(s, id)
}

// FindGroupByTitle finds a group by trimmed, case-insensitive title.
func FindGroupByTitle(s *store.Store, title string) (models.HabitGroupRow, bool) {
	target := strings.ToLower(strings.TrimSpace(title))
	if target == "" {
		return models.HabitGroupRow{}, false
	}
	for _, g := range OrderedGroups(s) {
		if strings.ToLower(strings.TrimSpace(g.Title)) == target {
			return g, true
		}
	}
	return models.HabitGroupRow{}, false
}

// ReorderGroup moves the group to targetIndex within the group list and
// resequences all groups to 0,10,20,... in one mutation batch.
func ReorderGroup(s *store.Store, id string, targetIndex int) error {
	group, err := groupByID(s, id)
	if err != nil {
		return err
	}

	rest := make([]models.HabitGroupRow, 0)
	for _, g := range allGroups(s) {
		if g.ID != id {
			rest = append(rest, g)
		}
	}
	sortGroupsByOrder(rest)

	targetIndex = clampIndex(targetIndex, len(rest))
	seq := append(rest[:targetIndex:targetIndex], append([]models.HabitGroupRow{group}, rest[targetIndex:]...)...)

	s.Transaction(func() {
		for i, g := range seq {
			s.SetCell(constants.TableGroups, g.ID, "order", i*constants.OrderStep)
		}
	})
	return nil
}

// ResequenceGroups rewrites all group order values to 0,10,20,... in their
// current relative order, removing gaps and duplicates.
func ResequenceGroups(s *store.Store) {
	groups := allGroups(s)
	sortGroupsByOrder(groups)

	s.Transaction(func() {
		for i, g := range groups {
			s.SetCell(constants.TableGroups, g.ID, "order", i*constants.OrderStep)
		}
	})
}
