package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/julianstephens/pactly/internal/constants"
	"github.com/julianstephens/pactly/internal/logger"
)

// Store wraps a Backend with fail-soft semantics: reads that fail or do not
// parse report "absent" and writes that fail are dropped. Both are logged.
type Store struct {
	backend Backend
	now     func() time.Time
}

func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		now:     time.Now,
	}
}

// SetClock replaces the time source used for export timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Backend returns the underlying persistence target.
func (s *Store) Backend() Backend {
	return s.backend
}

// Get decodes the value stored at key into dest and reports whether it did.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("store read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("store value is not valid JSON, treating as empty", "key", key, "error", err)
		return false
	}
	return true
}

// Set encodes value and writes it at key. Failures are logged and dropped.
func (s *Store) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("store value could not be encoded", "key", key, "error", err)
		return
	}
	if err := s.backend.Set(ctx, key, data); err != nil {
		logger.Warn("store write dropped", "key", key, "error", err)
	}
}

// Has reports whether a readable value exists at key.
func (s *Store) Has(ctx context.Context, key string) bool {
	var raw json.RawMessage
	return s.Get(ctx, key, &raw)
}

func (s *Store) remove(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		logger.Warn("store delete dropped", "key", key, "error", err)
	}
}

// Initialized reports whether the one-time seed has run.
func (s *Store) Initialized(ctx context.Context) bool {
	var done bool
	return s.Get(ctx, constants.KeyInitialized, &done) && done
}

// MarkInitialized sets the seed sentinel.
func (s *Store) MarkInitialized(ctx context.Context) {
	s.Set(ctx, constants.KeyInitialized, true)
}

// ClearAllData removes every known collection, the session and the seed
// sentinel.
func (s *Store) ClearAllData(ctx context.Context) {
	for _, key := range constants.CollectionKeys {
		s.remove(ctx, key)
	}
	logger.Info("all data cleared")
}
