package system

import (
	"context"
	"fmt"
	"os"

	"github.com/julianstephens/pactly/internal/cli"
	"github.com/julianstephens/pactly/internal/seed"
)

type InitCmd struct {
	Force  bool `help:"Delete an existing local store before initializing."`
	NoSeed bool `help:"Do not add the demo users, pacts and rooms."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if !ctx.Target.IsFile() {
			return fmt.Errorf("--force only applies to local stores; use 'pactly data clear' for %s", ctx.Target.Kind)
		}
		path := ctx.Backend.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Backend.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Backend.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized pactly storage at: %s\n", describe(ctx))

	if c.NoSeed {
		ctx.Store.MarkInitialized(context.Background())
		return nil
	}
	if seed.Seed(context.Background(), ctx.Store, ctx.Now()) {
		ctx.Println("Added demo data. Sign in with 'pactly login <email>' to start your own pacts.")
	}
	return nil
}

// describe hides connection strings that may carry user names.
func describe(ctx *cli.Context) string {
	if ctx.Target.IsFile() {
		return ctx.Backend.GetConfigPath()
	}
	return string(ctx.Target.Kind) + " store"
}
