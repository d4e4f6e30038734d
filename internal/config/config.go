// Package config resolves where pactly keeps its data. Environment
// variables may come from a .env file; the --config target may name a
// file, a database URL or an OS keyring entry.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/pactly/internal/constants"
	"github.com/julianstephens/pactly/internal/keyring"
	"github.com/julianstephens/pactly/internal/utils"
)

// Kind is the storage backend a target selects.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindRedis    Kind = "redis"
	KindJSON     Kind = "json"
)

// Target is a resolved --config value.
type Target struct {
	// Location is a filesystem path for file backends and a URL otherwise.
	Location string
	Kind     Kind
	// Dir holds logs and backups.
	Dir string
}

// IsFile reports whether the backend lives in a local file.
func (t Target) IsFile() bool {
	return t.Kind == KindSQLite || t.Kind == KindJSON
}

// LoadEnv reads the given .env files, or ./.env when none are named.
// Missing files are skipped; variables already set in the process win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// DetectKind picks a backend from the shape of target.
func DetectKind(target string) Kind {
	switch {
	case strings.HasPrefix(target, "postgres://"), strings.HasPrefix(target, "postgresql://"):
		return KindPostgres
	case strings.HasPrefix(target, "redis://"), strings.HasPrefix(target, "rediss://"):
		return KindRedis
	case strings.EqualFold(filepath.Ext(target), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// Resolve turns a --config value into a Target. Keyring references are
// looked up first, then "~" is expanded for file backends.
func Resolve(raw string) (Target, error) {
	location, err := keyring.Resolve(raw)
	if err != nil {
		return Target{}, fmt.Errorf("failed to read connection string from keyring: %w", err)
	}

	t := Target{Location: location, Kind: DetectKind(location)}
	if t.IsFile() {
		if t.Location, err = utils.ExpandHome(location); err != nil {
			return Target{}, err
		}
		t.Dir = filepath.Dir(t.Location)
		return t, nil
	}

	defaultPath, err := utils.ExpandHome(constants.DefaultConfigPath)
	if err != nil {
		return Target{}, err
	}
	t.Dir = filepath.Dir(defaultPath)
	return t, nil
}
