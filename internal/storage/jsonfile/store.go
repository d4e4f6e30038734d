// Package jsonfile keeps every collection in a single JSON document on disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/pactly/internal/storage"
)

const documentVersion = 1

type document struct {
	Version int                        `json:"version"`
	Data    map[string]json.RawMessage `json:"data"`
}

type Store struct {
	path string
	mu   sync.Mutex
	doc  *document
}

var _ storage.Backend = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Init creates the document if it does not exist and loads it otherwise.
func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = &document{
		Version: documentVersion,
		Data:    make(map[string]json.RawMessage),
	}
	return s.save()
}

func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'pactly init' first")
		}
		return fmt.Errorf("failed to read storage file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse storage file: %w", err)
	}
	if doc.Version > documentVersion {
		return fmt.Errorf("storage file version (%d) is newer than supported version (%d) - please upgrade pactly", doc.Version, documentVersion)
	}
	if doc.Data == nil {
		doc.Data = make(map[string]json.RawMessage)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = &doc
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// save writes the document through a temp file so a crash never leaves a
// truncated store behind. Callers hold mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".pactly-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, errors.New("storage not loaded")
	}
	v, ok := s.doc.Data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return errors.New("storage not loaded")
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for %s is not valid JSON", key)
	}
	prev, had := s.doc.Data[key]
	s.doc.Data[key] = append(json.RawMessage(nil), value...)
	if err := s.save(); err != nil {
		s.restore(key, prev, had)
		return err
	}
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return errors.New("storage not loaded")
	}
	prev, ok := s.doc.Data[key]
	if !ok {
		return nil
	}
	delete(s.doc.Data, key)
	if err := s.save(); err != nil {
		s.restore(key, prev, true)
		return err
	}
	return nil
}

// restore puts back the in-memory value of key after a failed save, so the
// document keeps matching the file. Callers hold mu.
func (s *Store) restore(key string, prev json.RawMessage, had bool) {
	if had {
		s.doc.Data[key] = prev
		return
	}
	delete(s.doc.Data, key)
}
