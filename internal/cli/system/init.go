package system

import (
	"fmt"
	"os"

	"github.com/rhysbell/ritual/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing store before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.RemoveAll(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized ritual storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Next: run 'ritual account register <name> <email> <password>'")
	return nil
}
