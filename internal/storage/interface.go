package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend when a key has never been written
// or was deleted.
var ErrNotFound = errors.New("key not found")

// Backend is a raw key/value persistence target. Every value is one whole
// collection serialized as JSON.
type Backend interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Repository loads and saves one whole collection. Load never fails; a
// missing or unreadable collection is empty.
type Repository[T any] interface {
	Load(ctx context.Context) []T
	Save(ctx context.Context, items []T)
}
