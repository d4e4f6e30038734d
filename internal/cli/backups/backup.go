package backups

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/pactly/internal/backup"
	"github.com/julianstephens/pactly/internal/cli"
	"github.com/julianstephens/pactly/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	path, err := ctx.Backups.CreateBackup(ctx.Store.ExportAllData(context.Background()))
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Printf("✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	backups, err := ctx.Backups.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", ctx.Backups.GetBackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		ctx.Printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	ctx.Printf("\nBackup directory: %s\n", ctx.Backups.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	path, err := c.resolve(ctx)
	if err != nil {
		return err
	}

	data, err := backup.ReadExport(path)
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.Println(cli.Warn("This replaces the backed-up user's pacts, all rooms and the activity feed."))
		ctx.Println("A backup of the current data is taken first.")
		ctx.Printf("\nRestore from: %s\n", path)
		if !ctx.Confirm("Continue?") {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	bg := context.Background()
	ctx.PerformAutomaticBackup(bg)
	ctx.Store.ImportData(bg, data)
	ctx.Println("✓ Data restored successfully!")
	return nil
}

// resolve accepts an absolute path, a path relative to the working
// directory or a bare file name inside the backup directory.
func (c *BackupRestoreCmd) resolve(ctx *cli.Context) (string, error) {
	if filepath.IsAbs(c.BackupFile) {
		if _, err := os.Stat(c.BackupFile); err != nil {
			return "", fmt.Errorf("backup file not found: %s", c.BackupFile)
		}
		return c.BackupFile, nil
	}

	if _, err := os.Stat(c.BackupFile); err == nil {
		abs, err := filepath.Abs(c.BackupFile)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}

	candidate := filepath.Join(ctx.Backups.GetBackupDir(), c.BackupFile)
	if _, err := os.Stat(candidate); err != nil {
		return "", fmt.Errorf("backup file not found: tried current directory and %s", ctx.Backups.GetBackupDir())
	}
	return candidate, nil
}
