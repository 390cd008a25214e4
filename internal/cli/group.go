package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/IlyaKukarkin/bee-bloom/internal/repo"
)

type GroupAddCmd struct {
	Title string `arg:"" help:"Group title."`
	Color string `short:"c" help:"Optional hex color."`
}

func (c *GroupAddCmd) Run(ctx *Context) error {
	if _, ok := repo.FindGroupByTitle(ctx.Store, c.Title); ok {
		return fmt.Errorf("a group titled %q already exists", c.Title)
	}

	id, err := repo.CreateGroup(ctx.Store, repo.CreateGroupInput{Title: c.Title, Color: c.Color})
	if err != nil {
		return err
	}
	fmt.Printf("Added group: %s (ID: %s)\n", c.Title, id)
	return nil
}

type GroupListCmd struct{}

func (c *GroupListCmd) Run(ctx *Context) error {
	groups := repo.OrderedGroups(ctx.Store)
	if len(groups) == 0 {
		fmt.Println("No groups yet")
		return nil
	}

	counts := make(map[string]int)
	for _, h := range repo.ActiveHabits(ctx.Store) {
		counts[h.GroupKey()]++
	}

	for _, g := range groups {
		line := fmt.Sprintf("  %s  %s", groupHeaderStyle.Render(g.Title), faintStyle.Render(fmt.Sprintf("%d habits", counts[g.ID])))
		fmt.Println(line)
	}
	if n := counts[""]; n > 0 {
		fmt.Printf("  %s  %s\n", groupHeaderStyle.Render("Ungrouped"), faintStyle.Render(fmt.Sprintf("%d habits", n)))
	}
	return nil
}

type GroupEditCmd struct {
	Group string  `arg:"" help:"Group id or title."`
	Title *string `help:"New title."`
	Color *string `help:"New hex color. Empty string clears it."`
}

func (c *GroupEditCmd) Run(ctx *Context) error {
	group, err := resolveGroup(ctx, c.Group)
	if err != nil {
		return err
	}

	if err := repo.UpdateGroup(ctx.Store, group.ID, repo.GroupUpdate{Title: c.Title, Color: c.Color}); err != nil {
		return err
	}
	fmt.Printf("Updated group: %s\n", group.Title)
	return nil
}

type GroupDeleteCmd struct {
	Group string `arg:"" help:"Group id or title."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *GroupDeleteCmd) Run(ctx *Context) error {
	group, err := resolveGroup(ctx, c.Group)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete group %q? Its habits become ungrouped.", group.Title)).
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

	if err := repo.DeleteGroup(ctx.Store, group.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted group: %s\n", group.Title)
	return nil
}

type GroupReorderCmd struct {
	Group string `arg:"" help:"Group id or title."`
	Index int    `arg:"" help:"Target position, 0-based."`
}

func (c *GroupReorderCmd) Run(ctx *Context) error {
	group, err := resolveGroup(ctx, c.Group)
	if err != nil {
		return err
	}

	for i, g := range repo.OrderedGroups(ctx.Store) {
		if g.ID == group.ID && i == c.Index {
			fmt.Println("Already at that position")
			return nil
		}
	}

	if err := repo.ReorderGroup(ctx.Store, group.ID, c.Index); err != nil {
		return err
	}
	fmt.Printf("Moved %s to position %d\n", group.Title, c.Index)
	return nil
}
