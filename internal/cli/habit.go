package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
	"github.com/IlyaKukarkin/bee-bloom/internal/models"
	"github.com/IlyaKukarkin/bee-bloom/internal/repo"
	"github.com/IlyaKukarkin/bee-bloom/internal/validation"
)

type HabitAddCmd struct {
	Title       string `arg:"" optional:"" help:"Habit title. Omit to fill in interactively."`
	Description string `short:"d" help:"Optional description."`
	Color       string `short:"c" help:"Hex color. Defaults to the next palette color."`
	Group       string `short:"g" help:"Group title. Created if it does not exist."`
	GroupID     string `help:"Explicit group id (instead of --group)."`
	Target      int    `short:"t" help:"Weekly target, 1-7." default:"7"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if strings.TrimSpace(c.Title) == "" {
		if err := c.prompt(); err != nil {
			return err
		}
	}

	input := repo.CreateHabitInput{
		Title:       c.Title,
		Description: c.Description,
		Color:       c.Color,
		GroupTitle:  c.Group,
		Palette:     ctx.Config.Habits.Palette,
	}
	if c.GroupID != "" {
		id := c.GroupID
		input.GroupID = &id
	}
	if c.Target != 0 {
		target := c.Target
		input.WeeklyTarget = &target
	}

	id, err := repo.CreateHabit(ctx.Store, input)
	if err != nil {
		return err
	}

	habit, err := repo.GetHabit(ctx.Store, id)
	if err != nil {
		return err
	}
	fmt.Printf("Added habit: %s %s (ID: %s)\n", colorDot(habit.Color), habit.Title, id)
	return nil
}

func (c *HabitAddCmd) prompt() error {
	target := strconv.Itoa(constants.WeeklyTargetDefault)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit title").
				Value(&c.Title).
				Validate(func(s string) error {
					_, err := validation.NormalizeTitle(s)
					return err
				}),
			huh.NewInput().
				Title("Description").
				Description("Optional").
				Value(&c.Description),
			huh.NewInput().
				Title("Group").
				Description("Optional, created if new").
				Value(&c.Group),
			huh.NewInput().
				Title("Weekly target (1-7)").
				Value(&target).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := strconv.Atoi(s); err != nil {
						return fmt.Errorf("weekly target must be a number")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if n, err := strconv.Atoi(strings.TrimSpace(target)); err == nil {
		c.Target = n
	}
	return nil
}

type HabitListCmd struct {
	Flat bool `help:"Plain creation-order list instead of the grouped view."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if c.Flat {
		habits := repo.ActiveHabits(ctx.Store)
		if len(habits) == 0 {
			fmt.Println("No habits yet")
			return nil
		}
		for _, h := range habits {
			printHabitLine(ctx, h)
		}
		return nil
	}

	view := repo.GroupedHabitsView(ctx.Store)
	if len(view) == 0 {
		fmt.Println("No habits yet")
		return nil
	}

	for _, bucket := range view {
		title := "Ungrouped"
		if bucket.Group != nil {
			title = bucket.Group.Title
		}
		fmt.Println(groupHeaderStyle.Render(title))
		for _, h := range bucket.Habits {
			printHabitLine(ctx, h)
		}
	}
	return nil
}

func printHabitLine(ctx *Context, h models.HabitRow) {
	progress := repo.GetWeeklyProgress(ctx.Store, h.ID, time.Now())
	line := fmt.Sprintf("  %s %s  %s", colorDot(h.Color), h.Title, faintStyle.Render(progress.Display))
	if h.Description != nil {
		line += "  " + faintStyle.Render(*h.Description)
	}
	fmt.Println(line)
}

type HabitEditCmd struct {
	Habit       string  `arg:"" help:"Habit id or title."`
	Title       *string `help:"New title."`
	Description *string `help:"New description. Empty string clears it."`
	Color       *string `help:"New hex color."`
	Group       *string `help:"New group id. Empty string moves to ungrouped."`
	Target      *int    `help:"New weekly target, clamped to 1-7."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	upd := repo.HabitUpdate{
		Title:        c.Title,
		Description:  c.Description,
		Color:        c.Color,
		GroupID:      c.Group,
		WeeklyTarget: c.Target,
	}
	if err := repo.UpdateHabit(ctx.Store, habit.ID, upd); err != nil {
		return err
	}
	fmt.Printf("Updated habit: %s\n", habit.Title)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q and its check history?", habit.Title)).
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := repo.DeleteHabit(ctx.Store, habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", habit.Title)
	return nil
}

type HabitReorderCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
	Index int    `arg:"" help:"Target position within the habit's group, 0-based."`
}

func (c *HabitReorderCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	if scopeIndex(ctx, habit) == c.Index {
		fmt.Println("Already at that position")
		return nil
	}

	if err := repo.ReorderHabitWithinGroup(ctx.Store, habit.ID, c.Index); err != nil {
		return err
	}
	fmt.Printf("Moved %s to position %d\n", habit.Title, c.Index)
	return nil
}

type HabitMoveCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
	Group string `arg:"" optional:"" help:"Target group id or title. Omit for ungrouped."`
	Index int    `short:"i" help:"Position within the target group." default:"0"`
}

func (c *HabitMoveCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	var targetID *string
	dest := "ungrouped"
	if strings.TrimSpace(c.Group) != "" {
		group, err := resolveGroup(ctx, c.Group)
		if err != nil {
			return err
		}
		targetID = &group.ID
		dest = group.Title
	}

	if err := repo.MoveHabitToGroup(ctx.Store, habit.ID, targetID, c.Index); err != nil {
		return err
	}
	fmt.Printf("Moved %s to %s\n", habit.Title, dest)
	return nil
}
