package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/pactly/internal/storage"
)

func setupTestSQLiteStore(t *testing.T) (*Store, func()) {
	dbPath := filepath.Join(t.TempDir(), "nested", "pactly.db")

	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	return store, func() { store.Close() }
}

func TestInitCreatesDatabase(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	if _, err := os.Stat(store.GetConfigPath()); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
	if store.GetDB() == nil {
		t.Error("GetDB() returned nil after Init")
	}
}

func TestGetSetDelete(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.Get(ctx, "pactly_pacts"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get on empty store error = %v, want ErrNotFound", err)
	}

	if err := store.Set(ctx, "pactly_pacts", []byte(`[{"id":"p1"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "pactly_pacts", []byte(`[{"id":"p2"}]`)); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	got, err := store.Get(ctx, "pactly_pacts")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[{"id":"p2"}]` {
		t.Errorf("Get() = %s, want overwritten value", got)
	}

	if err := store.Delete(ctx, "pactly_pacts"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "pactly_pacts"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing database", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "absent.db"))
		err := store.Load()
		if err == nil || !strings.Contains(err.Error(), "pactly init") {
			t.Errorf("Load() error = %v, want init hint", err)
		}
	})

	t.Run("reopen keeps data", func(t *testing.T) {
		store, cleanup := setupTestSQLiteStore(t)
		ctx := context.Background()
		if err := store.Set(ctx, "pactly_rooms", []byte(`[]`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		path := store.GetConfigPath()
		cleanup()

		reopened := NewStore(path)
		if err := reopened.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		defer reopened.Close()

		got, err := reopened.Get(ctx, "pactly_rooms")
		if err != nil || string(got) != "[]" {
			t.Errorf("Get() = %s, %v after reopen", got, err)
		}
	})
}

func TestOperationsBeforeLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "x.db"))
	ctx := context.Background()

	if _, err := store.Get(ctx, "k"); err == nil {
		t.Error("Get before Load should fail")
	}
	if err := store.Set(ctx, "k", []byte("1")); err == nil {
		t.Error("Set before Load should fail")
	}
	if err := store.Delete(ctx, "k"); err == nil {
		t.Error("Delete before Load should fail")
	}
}
