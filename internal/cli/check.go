package cli

import (
	"fmt"
	"time"

	"github.com/IlyaKukarkin/bee-bloom/internal/repo"
	"github.com/IlyaKukarkin/bee-bloom/internal/utils"
)

type CheckCmd struct {
	Habit     string `arg:"" help:"Habit id or title."`
	Date      string `short:"D" help:"Date (YYYY-MM-DD). Defaults to today; yesterday is the only other allowed value."`
	Yesterday bool   `short:"y" help:"Toggle yesterday's check."`
}

func (c *CheckCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	now := time.Now()
	date := c.Date
	if date == "" {
		date = utils.TodayKey(now)
		if c.Yesterday {
			date = utils.YesterdayKey(now)
		}
	}

	completed, err := repo.ToggleDailyCheck(ctx.Store, habit.ID, date, now)
	if err != nil {
		return err
	}

	if completed {
		fmt.Printf("%s %s on %s\n", checkMark(true), habit.Title, date)
	} else {
		fmt.Printf("%s %s unchecked on %s\n", checkMark(false), habit.Title, date)
	}
	return nil
}

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	now := time.Now()
	checks := repo.TodayChecks(ctx.Store, now)

	view := repo.GroupedHabitsView(ctx.Store)
	if len(view) == 0 {
		fmt.Println("No habits yet")
		return nil
	}

	total, done := 0, 0
	for _, bucket := range view {
		title := "Ungrouped"
		if bucket.Group != nil {
			title = bucket.Group.Title
		}
		fmt.Println(groupHeaderStyle.Render(title))

		for _, h := range bucket.Habits {
			total++
			completed := false
			if check, ok := checks[h.ID]; ok {
				completed = check.Completed
			}
			if completed {
				done++
			}
			fmt.Printf("  %s %s %s\n", checkMark(completed), colorDot(h.Color), h.Title)
		}
	}

	fmt.Println()
	if done == total {
		fmt.Println(doneStyle.Render(fmt.Sprintf("All %d habits done today", total)))
	} else {
		fmt.Printf("%d/%d done today\n", done, total)
	}
	return nil
}
