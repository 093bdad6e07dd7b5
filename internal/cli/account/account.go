// Package account implements the account command tree. Unlike the habit
// commands, failures here surface the typed session errors directly.
package account

import (
	"errors"
	"fmt"

	"github.com/rhysbell/ritual/internal/cli"
	"github.com/rhysbell/ritual/internal/constants"
	"github.com/rhysbell/ritual/internal/keyring"
	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/session"
	"github.com/rhysbell/ritual/internal/utils"
)

type RegisterCmd struct {
	Name     string `arg:"" help:"Display name."`
	Email    string `arg:"" help:"Account email."`
	Password string `arg:"" help:"Account password (min 8 characters)."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Session.Register(c.Name, c.Email, c.Password)
	if err != nil {
		return err
	}
	fmt.Printf("Registered account for %s <%s>\n", user.Name, user.Email)
	return nil
}

type LoginCmd struct {
	Email    string `arg:"" optional:"" help:"Account email (omit to use remembered credentials)."`
	Password string `arg:"" optional:"" help:"Account password."`
	Remember bool   `help:"Remember credentials in the OS keyring."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	email, password := c.Email, c.Password
	if email == "" {
		creds, err := keyring.GetCredentials()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return fmt.Errorf("no remembered credentials, run 'ritual account login <email> <password>'")
			}
			return err
		}
		email, password = creds.Email, creds.Password
	}

	user, err := ctx.Session.Login(email, password)
	if err != nil {
		if errors.Is(err, session.ErrNoAccount) {
			return fmt.Errorf("no account registered, run 'ritual account register' first")
		}
		return err
	}

	if c.Remember {
		if err := keyring.SetCredentials(keyring.Credentials{Email: email, Password: password}); err != nil {
			fmt.Printf("Warning: could not remember credentials: %v\n", err)
		}
	}

	fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

type LogoutCmd struct {
	Forget bool `help:"Also remove remembered credentials from the OS keyring."`
}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Session.Logout(); err != nil {
		return err
	}
	if c.Forget {
		if err := keyring.DeleteCredentials(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			fmt.Printf("Warning: could not remove remembered credentials: %v\n", err)
		}
	}
	fmt.Println("Logged out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Session.CurrentUser()
	if err != nil {
		return err
	}

	status := "logged out"
	if ctx.Session.IsAuthenticated() {
		status = "logged in"
	}

	fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, status)
	fmt.Printf("  Theme:    %s\n", user.Preferences.Theme)
	if user.Preferences.ReminderAt != "" {
		fmt.Printf("  Reminder: %s\n", user.Preferences.ReminderAt)
	}
	fmt.Printf("  Since:    %s\n", user.CreatedAt.Format(constants.DateFormat))
	return nil
}

type ProfileCmd struct {
	Name  string `help:"New display name." default:""`
	Email string `help:"New account email." default:""`
}

func (c *ProfileCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	if c.Name == "" && c.Email == "" {
		return fmt.Errorf("nothing to update, pass --name or --email")
	}

	update := session.ProfileUpdate{}
	if c.Name != "" {
		update.Name = &c.Name
	}
	if c.Email != "" {
		update.Email = &c.Email
	}

	user, err := ctx.Session.UpdateProfile(update)
	if err != nil {
		return err
	}
	fmt.Printf("Updated profile: %s <%s>\n", user.Name, user.Email)
	return nil
}

type PasswordCmd struct {
	Current string `arg:"" help:"Current password."`
	New     string `arg:"" help:"New password (min 8 characters)."`
}

func (c *PasswordCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	if err := ctx.Session.ChangePassword(c.Current, c.New); err != nil {
		return err
	}

	// Remembered credentials now hold the old password; refresh them.
	if creds, err := keyring.GetCredentials(); err == nil {
		creds.Password = c.New
		if err := keyring.SetCredentials(creds); err != nil {
			fmt.Printf("Warning: could not update remembered credentials: %v\n", err)
		}
	}

	fmt.Println("Password changed.")
	return nil
}

type PrefsCmd struct {
	Theme    string `help:"Color theme: light or dark." enum:"light,dark," default:""`
	Reminder string `help:"Default reminder time (HH:MM)." default:""`
}

func (c *PrefsCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	if c.Theme == "" && c.Reminder == "" {
		user, err := ctx.Session.CurrentUser()
		if err != nil {
			return err
		}
		fmt.Printf("Theme:    %s\n", user.Preferences.Theme)
		if user.Preferences.ReminderAt != "" {
			fmt.Printf("Reminder: %s\n", user.Preferences.ReminderAt)
		}
		return nil
	}

	update := session.PreferencesUpdate{}
	if c.Theme != "" {
		theme := models.Theme(c.Theme)
		update.Theme = &theme
	}
	if c.Reminder != "" {
		if !utils.ValidateTimeFormat(c.Reminder) {
			return fmt.Errorf("invalid reminder time: %s (expected HH:MM)", c.Reminder)
		}
		update.ReminderAt = &c.Reminder
	}

	user, err := ctx.Session.UpdatePreferences(update)
	if err != nil {
		return err
	}
	fmt.Printf("Preferences updated (theme %s)\n", user.Preferences.Theme)
	return nil
}

type WipeCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *WipeCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	if !c.Yes {
		fmt.Print("Delete ALL habits and logs? The account itself is kept. [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Session.WipeData(); err != nil {
		return err
	}
	fmt.Println("All habit data wiped.")
	return nil
}
