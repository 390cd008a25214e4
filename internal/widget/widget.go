// Package widget builds the read-only projection consumed by the
// out-of-process widget surface. The widget opens its own store handle on
// the same persisted file as the app; its snapshot may be stale relative to
// concurrent app writes, which is accepted (last writer wins at the file
// level).
package widget

import (
	"math"
	"sort"
	"time"

	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
	"github.com/IlyaKukarkin/bee-bloom/internal/models"
	"github.com/IlyaKukarkin/bee-bloom/internal/persist"
	"github.com/IlyaKukarkin/bee-bloom/internal/repo"
	"github.com/IlyaKukarkin/bee-bloom/internal/store"
	"github.com/IlyaKukarkin/bee-bloom/internal/utils"
)

// Size selects the widget's display capacity.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Capacity returns how many incomplete habits the size can display.
func (s Size) Capacity() int {
	switch s {
	case SizeSmall:
		return 3
	case SizeMedium:
		return 6
	default:
		return 10
	}
}

// SizeFromFamily maps a host widget family name to a Size. Unknown families
// get the large layout.
func SizeFromFamily(family string) Size {
	switch family {
	case "systemSmall":
		return SizeSmall
	case "systemMedium":
		return SizeMedium
	default:
		return SizeLarge
	}
}

// Item is one display-ready incomplete habit, enriched with its group.
type Item struct {
	ID         string
	Title      string
	Color      string
	GroupID    *string
	GroupTitle *string
	Order      int
}

// ViewState is the bounded projection handed to the host widget runtime.
type ViewState struct {
	IncompleteHabits []Item
	TotalIncomplete  int
	AllComplete      bool
	HasHabits        bool
	GeneratedAt      time.Time
}

// Bridge holds the widget process's independent store handle.
type Bridge struct {
	store     *store.Store
	persister persist.Persister
}

// Open creates a fresh store bound to the persisted file at path and loads
// it. The handle is independent of the app process's store; no cross-process
// lock is taken.
func Open(path string) (*Bridge, error) {
	s := store.New()
	p := persist.NewSQLite(s, path)
	if err := p.Init(); err != nil {
		return nil, err
	}
	if err := p.Load(); err != nil {
		p.Close()
		return nil, err
	}
	return &Bridge{store: s, persister: p}, nil
}

// Store exposes the bridge's store for the read and write paths.
func (b *Bridge) Store() *store.Store {
	return b.store
}

// Save persists the bridge's store back to the shared file.
func (b *Bridge) Save() error {
	return b.persister.Save()
}

// Close releases the backing file.
func (b *Bridge) Close() error {
	return b.persister.Close()
}

// ungroupedOrder sorts ungrouped habits after every grouped one.
const ungroupedOrder = math.MaxInt

// TodayIncompleteHabits returns the active habits without a completed check
// for dateKey, sorted by (group order, habit order) with ungrouped habits
// last, mirroring the primary view's grouping.
func TodayIncompleteHabits(s *store.Store, dateKey string) []Item {
	groups := s.GetTable(constants.TableGroups)
	groupOrder := make(map[string]int, len(groups))
	groupTitle := make(map[string]string, len(groups))
	for id, cells := range groups {
		g := models.GroupFromCells(id, cells)
		groupOrder[g.ID] = g.Order
		groupTitle[g.ID] = g.Title
	}

	var items []Item
	itemGroupOrder := make(map[string]int)

	for rowID, cells := range s.GetTable(constants.TableHabits) {
		habit := models.HabitFromCells(rowID, cells)
		if habit.Deleted() {
			continue
		}

		if check, ok := s.GetRow(constants.TableChecks, models.CheckKey{HabitID: habit.ID, Date: dateKey}.String()); ok {
			if models.CheckFromCells("", check).Completed {
				continue
			}
		}

		item := Item{
			ID:      habit.ID,
			Title:   habit.Title,
			Color:   habit.Color,
			GroupID: habit.GroupID,
			Order:   habit.Order,
		}

		order := ungroupedOrder
		if habit.GroupID != nil {
			if o, ok := groupOrder[*habit.GroupID]; ok {
				order = o
			} else {
				order = 0
			}
			if title, ok := groupTitle[*habit.GroupID]; ok {
				t := title
				item.GroupTitle = &t
			}
		}
		itemGroupOrder[item.ID] = order

		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		gi, gj := itemGroupOrder[items[i].ID], itemGroupOrder[items[j].ID]
		if gi != gj {
			return gi < gj
		}
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].ID < items[j].ID
	})

	return items
}

// GetViewState builds the bounded projection for one widget size. The
// incomplete list is truncated to the size's capacity while TotalIncomplete
// reports the true count; AllComplete is true only when habits exist and
// none are incomplete.
func GetViewState(s *store.Store, size Size, now time.Time) ViewState {
	dateKey := utils.TodayKey(now)

	hasHabits := false
	for rowID, cells := range s.GetTable(constants.TableHabits) {
		if !models.HabitFromCells(rowID, cells).Deleted() {
			hasHabits = true
			break
		}
	}

	incomplete := TodayIncompleteHabits(s, dateKey)

	shown := incomplete
	if max := size.Capacity(); len(shown) > max {
		shown = shown[:max]
	}

	return ViewState{
		IncompleteHabits: shown,
		TotalIncomplete:  len(incomplete),
		AllComplete:      hasHabits && len(incomplete) == 0,
		HasHabits:        hasHabits,
		GeneratedAt:      now,
	}
}

// MarkComplete sets today's check for the habit to completed. It runs the
// same validation as the toggle path but is one-directional: a glanceable
// surface may complete a habit, never un-complete it.
func MarkComplete(s *store.Store, habitID string, now time.Time) error {
	date := utils.TodayKey(now)

	if check, ok := repo.DailyCheckFor(s, habitID, date); ok && check.Completed {
		// Already complete; nothing to write.
		if _, err := repo.GetHabit(s, habitID); err != nil {
			return err
		}
		return nil
	}

	done, err := repo.ToggleDailyCheck(s, habitID, date, now)
	if err != nil {
		return err
	}
	if !done {
		// The toggle flipped an existing completed row off; flip it back.
		// Unreachable given the guard above, kept for safety.
		_, err = repo.ToggleDailyCheck(s, habitID, date, now)
	}
	return err
}

// TimelineDates returns the refresh instants the host widget should schedule:
// now, the next hour in quarter-hour steps, and the upcoming midnight (the
// day-key rollover). Sorted and de-duplicated.
func TimelineDates(now time.Time) []time.Time {
	dates := []time.Time{
		now,
		now.Add(15 * time.Minute),
		now.Add(30 * time.Minute),
		now.Add(45 * time.Minute),
		now.Add(60 * time.Minute),
		utils.NextMidnight(now),
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := dates[:1]
	for _, d := range dates[1:] {
		if !d.Equal(out[len(out)-1]) {
			out = append(out, d)
		}
	}
	return out
}
