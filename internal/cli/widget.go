package cli

import (
	"fmt"
	"time"

	"github.com/IlyaKukarkin/bee-bloom/internal/logger"
	"github.com/IlyaKukarkin/bee-bloom/internal/persist"
	"github.com/IlyaKukarkin/bee-bloom/internal/widget"
)

// The widget commands open their own store handle on the persisted file,
// exactly like the out-of-process widget surface would. They never reuse the
// app context's store, and they report failures softly: a glanceable surface
// must render something rather than crash.

type WidgetViewCmd struct {
	Size string `short:"s" help:"Widget size (small|medium|large). Defaults to the configured size."`
}

func (c *WidgetViewCmd) Run(ctx *Context) error {
	size := widget.Size(c.Size)
	if c.Size == "" {
		size = widget.Size(ctx.Config.Widget.Size)
	}

	bridge, err := widget.Open(persist.ExpandPath(ctx.Config.Storage.Path))
	if err != nil {
		logger.Error("widget could not open store", "error", err)
		fmt.Println(faintStyle.Render("beebloom: data unavailable"))
		return nil
	}
	defer bridge.Close()

	now := time.Now()
	state := widget.GetViewState(bridge.Store(), size, now)

	if !state.HasHabits {
		fmt.Println(faintStyle.Render("No habits yet"))
		return nil
	}
	if state.AllComplete {
		fmt.Println(doneStyle.Render("All habits done today"))
		return nil
	}

	for _, item := range state.IncompleteHabits {
		line := fmt.Sprintf("%s %s", colorDot(item.Color), item.Title)
		if item.GroupTitle != nil {
			line += "  " + faintStyle.Render(*item.GroupTitle)
		}
		fmt.Println(line)
	}
	if hidden := state.TotalIncomplete - len(state.IncompleteHabits); hidden > 0 {
		fmt.Println(faintStyle.Render(fmt.Sprintf("+%d more", hidden)))
	}

	for _, at := range widget.TimelineDates(now) {
		logger.Debug("widget refresh scheduled", "at", at.Format(time.RFC3339))
	}
	return nil
}

type WidgetDoneCmd struct {
	Habit string `arg:"" help:"Habit id."`
}

func (c *WidgetDoneCmd) Run(ctx *Context) error {
	bridge, err := widget.Open(persist.ExpandPath(ctx.Config.Storage.Path))
	if err != nil {
		logger.Error("widget could not open store", "error", err)
		return nil
	}
	defer bridge.Close()

	now := time.Now()
	if err := widget.MarkComplete(bridge.Store(), c.Habit, now); err != nil {
		logger.Error("widget mark-complete failed", "habit", c.Habit, "error", err)
		fmt.Println(faintStyle.Render("could not mark habit complete"))
		return nil
	}
	if err := bridge.Save(); err != nil {
		logger.Error("widget save failed", "error", err)
		return nil
	}

	fmt.Printf("%s marked complete\n", checkMark(true))
	return nil
}
