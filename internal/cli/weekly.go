package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/IlyaKukarkin/bee-bloom/internal/repo"
	"github.com/IlyaKukarkin/bee-bloom/internal/utils"
)

type WeeklyCmd struct {
	Flat bool `help:"Single list instead of group buckets."`
}

func (c *WeeklyCmd) Run(ctx *Context) error {
	now := time.Now()
	fmt.Printf("Week of %s\n", utils.WeekStartKey(now))
	fmt.Println(faintStyle.Render("        M T W T F S S"))

	if c.Flat {
		data := repo.GetWeeklyData(ctx.Store, now)
		if len(data) == 0 {
			fmt.Println("No habits yet")
			return nil
		}
		for _, hw := range data {
			printWeeklyLine(ctx, hw, now)
		}
		return nil
	}

	buckets := repo.GetWeeklyDataByGroup(ctx.Store, now)
	if len(buckets) == 0 {
		fmt.Println("No habits yet")
		return nil
	}
	for _, bucket := range buckets {
		fmt.Println(groupHeaderStyle.Render(bucket.GroupTitle))
		for _, hw := range bucket.Habits {
			printWeeklyLine(ctx, hw, now)
		}
	}
	return nil
}

func printWeeklyLine(ctx *Context, hw repo.HabitWeekly, now time.Time) {
	marks := make([]string, 0, len(hw.Checks))
	for _, check := range hw.Checks {
		marks = append(marks, checkMark(check.Completed))
	}

	progress := repo.GetWeeklyProgress(ctx.Store, hw.Habit.ID, now)
	fmt.Printf("  %s %-20s %s  %s\n",
		colorDot(hw.Habit.Color),
		hw.Habit.Title,
		strings.Join(marks, " "),
		faintStyle.Render(progress.Display),
	)
}
