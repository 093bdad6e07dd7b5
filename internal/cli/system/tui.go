package system

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rhysbell/ritual/internal/cli"
	"github.com/rhysbell/ritual/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	// Automatic backup on TUI startup
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Tracker, ctx.Session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
