package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/julianstephens/pactly/internal/storage"
)

// Set POSTGRES_TEST_URL to run against a real database, e.g.
// POSTGRES_TEST_URL="postgres://pactly@localhost:5432/pactly_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	key := "pactly_integration_probe"
	defer store.Delete(ctx, key)

	if err := store.Set(ctx, key, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"a": 1}` && string(got) != `{"a":1}` {
		t.Errorf("Get() = %s", got)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, key); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
}
