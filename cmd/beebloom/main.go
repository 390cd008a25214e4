package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/IlyaKukarkin/bee-bloom/internal/cli"
	"github.com/IlyaKukarkin/bee-bloom/internal/cli/system"
	"github.com/IlyaKukarkin/bee-bloom/internal/config"
	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
	apperrors "github.com/IlyaKukarkin/bee-bloom/internal/errors"
	"github.com/IlyaKukarkin/bee-bloom/internal/logger"
	"github.com/IlyaKukarkin/bee-bloom/internal/migration"
	"github.com/IlyaKukarkin/bee-bloom/internal/persist"
	"github.com/IlyaKukarkin/bee-bloom/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	Db      string `help:"Store file path (.db for SQLite, .json for JSON)." type:"path"`
	Debug   bool   `help:"Verbose logging to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize beebloom storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run data migrations explicitly."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run diagnostics."`

	Habit struct {
		Add     cli.HabitAddCmd     `cmd:"" help:"Add a new habit."`
		List    cli.HabitListCmd    `cmd:"" help:"List habits."`
		Edit    cli.HabitEditCmd    `cmd:"" help:"Edit a habit."`
		Delete  cli.HabitDeleteCmd  `cmd:"" help:"Delete a habit and its check history."`
		Reorder cli.HabitReorderCmd `cmd:"" help:"Move a habit within its group."`
		Move    cli.HabitMoveCmd    `cmd:"" help:"Move a habit to another group."`
	} `cmd:"" help:"Manage habits."`

	Group struct {
		Add     cli.GroupAddCmd     `cmd:"" help:"Add a new group."`
		List    cli.GroupListCmd    `cmd:"" help:"List groups."`
		Edit    cli.GroupEditCmd    `cmd:"" help:"Edit a group."`
		Delete  cli.GroupDeleteCmd  `cmd:"" help:"Delete a group, keeping its habits."`
		Reorder cli.GroupReorderCmd `cmd:"" help:"Move a group in the group list."`
	} `cmd:"" help:"Manage habit groups."`

	Check  cli.CheckCmd  `cmd:"" help:"Toggle a habit's check for today or yesterday."`
	Today  cli.TodayCmd  `cmd:"" help:"Show today's habits." default:"1"`
	Weekly cli.WeeklyCmd `cmd:"" help:"Show this week's checks."`

	Widget struct {
		View cli.WidgetViewCmd `cmd:"" help:"Render the widget projection."`
		Done cli.WidgetDoneCmd `cmd:"" help:"Mark a habit complete from the widget surface."`
	} `cmd:"" help:"Widget surface commands (separate store handle)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with groups, ordering, and weekly targets"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.LoadDefault()
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Logging.Debug = true
	}
	if CLI.Db != "" {
		cfg.Storage.Path = CLI.Db
	}

	if err := logger.Init(logger.Config{Debug: cfg.Logging.Debug, ConfigDir: config.Dir()}); err != nil {
		apperrors.Fatal(err)
	}

	s := store.New()
	path := persist.ExpandPath(cfg.Storage.Path)

	var p persist.Persister
	if strings.HasSuffix(path, ".json") {
		p = persist.NewJSON(s, path)
	} else {
		p = persist.NewSQLite(s, path)
	}

	if err := p.Init(); err != nil {
		apperrors.Fatal(err)
	}
	defer p.Close()

	if err := p.Load(); err != nil {
		apperrors.Fatal(err)
	}

	migration.NewRunner().Run(s)

	stop := p.StartAutoSave()
	defer stop()

	appCtx := &cli.Context{
		Store:     s,
		Persister: p,
		Config:    cfg,
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}
