// Package models defines the persisted row shapes of the three tables
// (habitGroups, habits, checks) and the conversions between typed rows and
// the store's untyped cell maps.
package models

import (
	"strings"

	apperrors "github.com/IlyaKukarkin/bee-bloom/internal/errors"
	"github.com/IlyaKukarkin/bee-bloom/internal/validation"
)

// HabitGroupRow is one row of the habitGroups table.
type HabitGroupRow struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Color     *string `json:"color,omitempty"`
	Order     int     `json:"order"`
	CreatedAt string  `json:"createdAt"`
}

// HabitRow is one row of the habits table. GroupID nil means ungrouped;
// DeletedAt non-nil means soft-deleted.
type HabitRow struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	Color        string  `json:"color"`
	GroupID      *string `json:"groupId,omitempty"`
	Order        int     `json:"order"`
	CreatedAt    string  `json:"createdAt"`
	DeletedAt    *string `json:"deletedAt,omitempty"`
	WeeklyTarget int     `json:"weeklyTarget"`
}

// Deleted reports whether the habit is soft-deleted.
func (h HabitRow) Deleted() bool {
	return h.DeletedAt != nil
}

// GroupKey returns the habit's ordering-scope key: the group id, or "" for
// ungrouped.
func (h HabitRow) GroupKey() string {
	if h.GroupID == nil {
		return ""
	}
	return *h.GroupID
}

// DailyCheckRow is one row of the checks table, keyed by habitId:date.
type DailyCheckRow struct {
	HabitID   string `json:"habitId"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	UpdatedAt string `json:"updatedAt"`
}

// CheckKey is the composite identity of a daily check. It is a structured
// tuple internally and only serializes to the delimited habitId:date form at
// the storage boundary.
type CheckKey struct {
	HabitID string
	Date    string
}

// String renders the storage row id ("habitId:date").
func (k CheckKey) String() string {
	return k.HabitID + ":" + k.Date
}

// ParseCheckKey splits a storage row id back into its parts. The split is on
// the last colon: date keys never contain one, so habit ids that do cannot
// corrupt the date part.
func ParseCheckKey(rowID string) (CheckKey, error) {
	i := strings.LastIndex(rowID, ":")
	if i <= 0 || i == len(rowID)-1 {
		return CheckKey{}, apperrors.Validationf("malformed check row id %q", rowID)
	}
	return CheckKey{HabitID: rowID[:i], Date: rowID[i+1:]}, nil
}

// Cells converts the group row into store cells.
func (g HabitGroupRow) Cells() map[string]interface{} {
	cells := map[string]interface{}{
		"id":        g.ID,
		"title":     g.Title,
		"order":     g.Order,
		"createdAt": g.CreatedAt,
	}
	if g.Color != nil {
		cells["color"] = *g.Color
	}
	return cells
}

// GroupFromCells builds a typed group row from store cells.
func GroupFromCells(rowID string, cells map[string]interface{}) HabitGroupRow {
	g := HabitGroupRow{
		ID:        cellString(cells, "id"),
		Title:     cellString(cells, "title"),
		Color:     cellStringPtr(cells, "color"),
		Order:     cellInt(cells, "order"),
		CreatedAt: cellString(cells, "createdAt"),
	}
	if g.ID == "" {
		g.ID = rowID
	}
	return g
}

// Cells converts the habit row into store cells. Nil optionals are stored as
// absent cells.
func (h HabitRow) Cells() map[string]interface{} {
	cells := map[string]interface{}{
		"id":           h.ID,
		"title":        h.Title,
		"color":        h.Color,
		"order":        h.Order,
		"createdAt":    h.CreatedAt,
		"weeklyTarget": h.WeeklyTarget,
	}
	if h.Description != nil {
		cells["description"] = *h.Description
	}
	if h.GroupID != nil {
		cells["groupId"] = *h.GroupID
	}
	if h.DeletedAt != nil {
		cells["deletedAt"] = *h.DeletedAt
	}
	return cells
}

// HabitFromCells builds a typed habit row from store cells. Numeric cells may
// arrive as float64 after a persistence round trip; the weekly target applies
// its clamp-or-default policy here so out-of-shape data degrades instead of
// failing.
func HabitFromCells(rowID string, cells map[string]interface{}) HabitRow {
	h := HabitRow{
		ID:           cellString(cells, "id"),
		Title:        cellString(cells, "title"),
		Description:  cellStringPtr(cells, "description"),
		Color:        cellString(cells, "color"),
		GroupID:      cellStringPtr(cells, "groupId"),
		Order:        cellInt(cells, "order"),
		CreatedAt:    cellString(cells, "createdAt"),
		DeletedAt:    cellStringPtr(cells, "deletedAt"),
		WeeklyTarget: validation.WeeklyTargetFromCell(cells["weeklyTarget"]),
	}
	if h.ID == "" {
		h.ID = rowID
	}
	return h
}

// Cells converts the check row into store cells.
func (c DailyCheckRow) Cells() map[string]interface{} {
	return map[string]interface{}{
		"habitId":   c.HabitID,
		"date":      c.Date,
		"completed": c.Completed,
		"updatedAt": c.UpdatedAt,
	}
}

// CheckFromCells builds a typed check row from store cells.
func CheckFromCells(rowID string, cells map[string]interface{}) DailyCheckRow {
	c := DailyCheckRow{
		HabitID:   cellString(cells, "habitId"),
		Date:      cellString(cells, "date"),
		Completed: cellBool(cells, "completed"),
		UpdatedAt: cellString(cells, "updatedAt"),
	}
	if c.HabitID == "" || c.Date == "" {
		if key, err := ParseCheckKey(rowID); err == nil {
			if c.HabitID == "" {
				c.HabitID = key.HabitID
			}
			if c.Date == "" {
				c.Date = key.Date
			}
		}
	}
	return c
}

func cellString(cells map[string]interface{}, name string) string {
	if v, ok := cells[name].(string); ok {
		return v
	}
	return ""
}

func cellStringPtr(cells map[string]interface{}, name string) *string {
	if v, ok := cells[name].(string); ok && v != "" {
		return &v
	}
	return nil
}

func cellBool(cells map[string]interface{}, name string) bool {
	if v, ok := cells[name].(bool); ok {
		return v
	}
	return false
}

func cellInt(cells map[string]interface{}, name string) int {
	switch v := cells[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
