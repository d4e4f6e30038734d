package system

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/julianstephens/pactly/internal/cli"
	"github.com/julianstephens/pactly/internal/constants"
	"github.com/julianstephens/pactly/internal/logger"
	"github.com/julianstephens/pactly/internal/migration"
	"github.com/julianstephens/pactly/internal/storage/sqlite"
	"github.com/julianstephens/pactly/internal/validation"
	"github.com/julianstephens/pactly/migrations"
)

type DoctorCmd struct {
	Fix bool `help:"Repair drifted counters in place."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, err error, warnOnly bool) {
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", name)
		case warnOnly:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", name, err)
			hasError = true
		}
	}

	reachErr := ctx.Backend.Load()
	report("Store reachable", reachErr, false)

	if reachErr == nil {
		report("Schema version", checkSchema(ctx), false)
		report("Data validation", checkData(ctx, cmd.Fix), false)
	} else {
		ctx.Println("⊘ Schema version: SKIPPED (store not reachable)")
		ctx.Println("⊘ Data validation: SKIPPED (store not reachable)")
	}
	report("Backups present", checkBackups(ctx), true)
	if path := logger.Path(); path != "" {
		ctx.Printf("ℹ Log file: %s\n", path)
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkSchema(ctx *cli.Context) error {
	store, ok := ctx.Backend.(*sqlite.Store)
	if !ok || store.GetDB() == nil {
		return nil
	}

	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return err
	}
	runner := migration.NewRunner(store.GetDB(), sub, migration.SQLite)

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if current != latest {
		return fmt.Errorf("schema version %d does not match expected version %d", current, latest)
	}
	return nil
}

func checkData(ctx *cli.Context, fix bool) error {
	bg := context.Background()
	v := validation.New()

	pacts := ctx.Store.Pacts().Load(bg)
	rooms := ctx.Store.Rooms().Load(bg)

	result := v.ValidatePacts(pacts)
	roomResult := v.ValidateRooms(rooms)
	result.Merge(roomResult)
	if !result.HasConflicts() {
		return nil
	}

	ctx.Printf("%s", result.FormatReport())
	if !fix {
		return fmt.Errorf("%d conflicts found, run 'pactly doctor --fix' to repair counters", len(result.Conflicts))
	}

	actions := v.FixPacts(pacts, result)
	actions = append(actions, v.FixRooms(rooms, roomResult)...)
	ctx.Store.Pacts().Save(bg, pacts)
	ctx.Store.Rooms().Save(bg, rooms)
	for _, a := range actions {
		ctx.Printf("  fixed: %s\n", a.Action)
	}

	remaining := v.ValidatePacts(pacts)
	remaining.Merge(v.ValidateRooms(rooms))
	if remaining.HasConflicts() {
		return fmt.Errorf("%d conflicts need a manual fix", len(remaining.Conflicts))
	}
	return nil
}

func checkBackups(ctx *cli.Context) error {
	backups, err := ctx.Backups.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups in %s (keeping up to %d)", ctx.Backups.GetBackupDir(), constants.MaxBackups)
	}
	return nil
}
