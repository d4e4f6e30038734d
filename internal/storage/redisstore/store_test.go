package redisstore

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/julianstephens/pactly/internal/storage"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "plain", url: "redis://localhost:6379/0", wantErr: false},
		{name: "tls", url: "rediss://user@cache.internal:6380/2", wantErr: false},
		{name: "wrong scheme", url: "postgres://localhost", wantErr: true},
		{name: "bad db number", url: "redis://localhost:6379/notanumber", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestKeyPrefix(t *testing.T) {
	s := New("redis://localhost:6379/0")
	if got := s.key("pactly_users"); got != "pactly:pactly_users" {
		t.Errorf("key() = %q", got)
	}
}

func TestOperationsBeforeLoad(t *testing.T) {
	s := New("redis://localhost:6379/0")
	ctx := context.Background()
	if _, err := s.Get(ctx, "k"); err == nil {
		t.Error("Get before Load should fail")
	}
	if err := s.Set(ctx, "k", []byte("1")); err == nil {
		t.Error("Set before Load should fail")
	}
}

// Set REDIS_TEST_URL to run against a real server, e.g. REDIS_TEST_URL="redis://localhost:6379/15"
func TestStore_Integration(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set, skipping Redis integration test")
	}

	s := New(url)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	key := "integration_probe"
	defer s.Delete(ctx, key)

	if err := s.Set(ctx, key, []byte(`[1,2]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := s.Get(ctx, key)
	if err != nil || string(got) != `[1,2]` {
		t.Fatalf("Get() = %s, %v", got, err)
	}
	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, key); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
}
