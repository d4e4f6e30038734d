// Package redisstore keeps each collection as a Redis string under a
// pactly-prefixed key.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/pactly/internal/constants"
	"github.com/julianstephens/pactly/internal/storage"
)

var errNotLoaded = errors.New("storage not loaded")

type Store struct {
	url    string
	prefix string
	client *redis.Client
}

var _ storage.Backend = (*Store)(nil)

func New(url string) *Store {
	return &Store{
		url:    url,
		prefix: constants.AppName + ":",
	}
}

// NewWithClient wraps an already configured client.
func NewWithClient(client *redis.Client) *Store {
	return &Store{
		prefix: constants.AppName + ":",
		client: client,
	}
}

// IsRedisURL reports whether s selects this backend.
func IsRedisURL(s string) bool {
	return strings.HasPrefix(s, "redis://") || strings.HasPrefix(s, "rediss://")
}

// ValidateURL parses a redis:// URL without connecting.
func ValidateURL(url string) error {
	if !IsRedisURL(url) {
		return fmt.Errorf("invalid Redis URL: expected redis:// or rediss:// scheme")
	}
	if _, err := redis.ParseURL(url); err != nil {
		return fmt.Errorf("invalid Redis URL: %w", err)
	}
	return nil
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

func (s *Store) connect() error {
	if s.client != nil {
		return nil
	}

	opts, err := redis.ParseURL(s.url)
	if err != nil {
		return fmt.Errorf("invalid Redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	s.client = client
	return nil
}

// Init connects. Redis needs no schema.
func (s *Store) Init() error {
	return s.connect()
}

func (s *Store) Load() error {
	return s.connect()
}

func (s *Store) Close() error {
	if s.client != nil {
		err := s.client.Close()
		s.client = nil
		return err
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return "redis"
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.client == nil {
		return nil, errNotLoaded
	}

	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.client == nil {
		return errNotLoaded
	}
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return errNotLoaded
	}
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
