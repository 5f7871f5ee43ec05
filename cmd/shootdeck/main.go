package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/shootdeck/shootdeck/internal/cli"
	"github.com/shootdeck/shootdeck/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path." type:"path" default:"~/.config/shootdeck/shootdeck.db"`

	Init       cli.InitCmd       `cmd:"" help:"Initialize shootdeck storage."`
	Tui        cli.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Day        cli.DayCmd        `cmd:"" help:"Show the schedule for a day."`
	Next       cli.NextCmd       `cmd:"" help:"Show the next shoot and upload."`
	Delayed    cli.DelayedCmd    `cmd:"" help:"Show events running late."`
	Reschedule cli.RescheduleCmd `cmd:"" help:"Move an event to a new date and time."`
	Serve      cli.ServeCmd      `cmd:"" help:"Run the public review server."`
	Doctor     cli.DoctorCmd     `cmd:"" help:"Run health diagnostics."`
	Event      struct {
		Add      cli.EventAddCmd      `cmd:"" help:"Add a new event."`
		List     cli.EventListCmd     `cmd:"" help:"List events."`
		Complete cli.EventCompleteCmd `cmd:"" help:"Mark an event completed."`
		Delete   cli.EventDeleteCmd   `cmd:"" help:"Delete an event."`
	} `cmd:"" help:"Manage events."`
	Review struct {
		Issue cli.ReviewIssueCmd `cmd:"" help:"Issue a one-time review link."`
		List  cli.ReviewListCmd  `cmd:"" help:"List reviews for a shoot."`
	} `cmd:"" help:"Manage review links."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
	Debug cli.DebugCmd `cmd:"" help:"Debugging helpers."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("shootdeck"),
		kong.Description("Shift scheduling and delay tracking for shoots and uploads"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Determine storage type based on extension
	var provider store.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		provider = store.NewJSONStore(CLI.Config)
	} else {
		provider = store.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{Store: provider}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
