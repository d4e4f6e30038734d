package backups

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/pactly/internal/cli"
	"github.com/julianstephens/pactly/internal/config"
	"github.com/julianstephens/pactly/internal/models"
	"github.com/julianstephens/pactly/internal/storage/memory"
)

func setup(t *testing.T) (*cli.Context, *bytes.Buffer, *models.User) {
	t.Helper()
	dir := t.TempDir()
	target := config.Target{Location: filepath.Join(dir, "pactly.db"), Kind: config.KindSQLite, Dir: dir}
	ctx := cli.NewContext(target, memory.New(), "")
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.In = strings.NewReader("")

	now := time.Date(2026, 4, 2, 7, 0, 0, 0, time.UTC)
	ctx.SetClock(func() time.Time {
		now = now.Add(time.Hour)
		return now
	})

	res := ctx.Sessions.Login(context.Background(), "riley@example.com", "secret1")
	require.True(t, res.Success, res.Error)
	return ctx, out, res.User
}

func TestBackupListEmpty(t *testing.T) {
	ctx, out, _ := setup(t)

	require.NoError(t, (&BackupListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No backups found.")
	assert.Contains(t, out.String(), ctx.Backups.GetBackupDir())
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out, _ := setup(t)

	require.NoError(t, (&BackupCreateCmd{}).Run(ctx))
	require.NoError(t, (&BackupCreateCmd{}).Run(ctx))
	assert.Equal(t, 2, strings.Count(out.String(), "✓ Backup created: pactly-"))

	out.Reset()
	require.NoError(t, (&BackupListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Available backups (2 total, keeping most recent 14)")
}

func TestBackupRestoreByName(t *testing.T) {
	ctx, out, user := setup(t)
	bg := context.Background()

	ctx.Pacts.CreatePact(bg, models.Pact{UserID: user.ID, Title: "Stretch"})
	path, err := ctx.Backups.CreateBackup(ctx.Store.ExportAllData(bg))
	require.NoError(t, err)

	ctx.Pacts.CreatePact(bg, models.Pact{UserID: user.ID, Title: "Added later"})
	require.Len(t, ctx.Pacts.ListPacts(bg, user.ID), 2)

	ctx.In = strings.NewReader("y\n")
	require.NoError(t, (&BackupRestoreCmd{BackupFile: filepath.Base(path)}).Run(ctx))
	assert.Contains(t, out.String(), "Restore from: "+path)
	assert.Contains(t, out.String(), "✓ Data restored successfully!")

	pacts := ctx.Pacts.ListPacts(bg, user.ID)
	require.Len(t, pacts, 1)
	assert.Equal(t, "Stretch", pacts[0].Title)

	backups, err := ctx.Backups.ListBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 2)
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, out, user := setup(t)
	bg := context.Background()

	path, err := ctx.Backups.CreateBackup(ctx.Store.ExportAllData(bg))
	require.NoError(t, err)
	ctx.Pacts.CreatePact(bg, models.Pact{UserID: user.ID, Title: "Stay"})

	ctx.In = strings.NewReader("no\n")
	require.NoError(t, (&BackupRestoreCmd{BackupFile: path}).Run(ctx))
	assert.Contains(t, out.String(), "Restore cancelled.")
	assert.Len(t, ctx.Pacts.ListPacts(bg, user.ID), 1)
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _, _ := setup(t)

	tests := []string{
		"pactly-20260101-0000.json",
		filepath.Join(t.TempDir(), "gone.json"),
	}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			err := (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(ctx)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "backup file not found")
		})
	}
}
