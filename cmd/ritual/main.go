package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/rhysbell/ritual/internal/cli"
	"github.com/rhysbell/ritual/internal/cli/account"
	"github.com/rhysbell/ritual/internal/cli/backups"
	"github.com/rhysbell/ritual/internal/cli/habits"
	"github.com/rhysbell/ritual/internal/cli/system"
	"github.com/rhysbell/ritual/internal/constants"
	apperrors "github.com/rhysbell/ritual/internal/errors"
	"github.com/rhysbell/ritual/internal/logger"
	"github.com/rhysbell/ritual/internal/session"
	"github.com/rhysbell/ritual/internal/storage"
	"github.com/rhysbell/ritual/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store path. A .db path uses SQLite, any other path a directory of JSON files." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init   system.InitCmd   `cmd:"" help:"Initialize ritual storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Export system.ExportCmd `cmd:"" help:"Export habits and logs as JSON or CSV."`

	Today habits.TodayCmd `cmd:"" help:"Show today's habit checklist."`
	Week  habits.WeekCmd  `cmd:"" help:"Show this week's completion overview."`
	Stats habits.StatsCmd `cmd:"" help:"Show per-habit statistics."`

	Habit struct {
		Add       habits.AddCmd       `cmd:"" help:"Add a new habit."`
		List      habits.ListCmd      `cmd:"" help:"List habits."`
		Edit      habits.EditCmd      `cmd:"" help:"Edit an existing habit."`
		Archive   habits.ArchiveCmd   `cmd:"" help:"Archive a habit."`
		Unarchive habits.UnarchiveCmd `cmd:"" help:"Unarchive a habit."`
		Delete    habits.DeleteCmd    `cmd:"" help:"Delete a habit and its logs."`
		Mark      habits.MarkCmd      `cmd:"" help:"Toggle a habit's completion for a day."`
		Note      habits.NoteCmd      `cmd:"" help:"Attach a note to a habit's day."`
	} `cmd:"" help:"Manage habits."`

	Account struct {
		Register account.RegisterCmd `cmd:"" help:"Register the local account."`
		Login    account.LoginCmd    `cmd:"" help:"Log in."`
		Logout   account.LogoutCmd   `cmd:"" help:"Log out."`
		Whoami   account.WhoamiCmd   `cmd:"" help:"Show the current account."`
		Profile  account.ProfileCmd  `cmd:"" help:"Update profile fields."`
		Password account.PasswordCmd `cmd:"" help:"Change the account password."`
		Prefs    account.PrefsCmd    `cmd:"" help:"Show or update preferences."`
		Wipe     account.WipeCmd     `cmd:"" help:"Delete all habit data."`
	} `cmd:"" help:"Manage the local account."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ritual"),
		kong.Description("Personal habit tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	configPath := expandPath(CLI.Config)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(configPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// A .db path selects the SQLite backend, anything else a directory of
	// per-key JSON files.
	var store storage.Provider
	if strings.HasSuffix(configPath, ".db") {
		store = storage.NewSQLiteStore(configPath)
	} else {
		store = storage.NewFileStore(configPath)
	}

	appCtx := &cli.Context{
		Store:   store,
		Tracker: tracker.NewRepository(store),
		Session: session.NewManager(store),
	}

	// Load the store before running the command (init handles its own loading)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
