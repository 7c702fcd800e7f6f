package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/daybookhq/daybook/internal/app"
	"github.com/daybookhq/daybook/internal/cli"
	"github.com/daybookhq/daybook/internal/constants"
	"github.com/daybookhq/daybook/internal/logger"
	"github.com/daybookhq/daybook/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"~/.config/daybook/daybook.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize daybook storage."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Agenda cli.AgendaCmd `cmd:"" help:"Show the agenda for a day."`
	Habit  cli.HabitCmd  `cmd:"" help:"Manage habits."`
	Task   cli.TaskCmd   `cmd:"" help:"Manage tasks."`
	Event  cli.EventCmd  `cmd:"" help:"Manage calendar events."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal habit, task and calendar tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := sqlite.NewStore(CLI.Config)
	appCtx := &cli.Context{
		Store: store,
		App:   app.New(store),
	}

	err := ctx.Run(appCtx)
	appCtx.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
