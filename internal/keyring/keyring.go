// Package keyring keeps store connection strings in the OS keyring so that
// database and redis credentials never appear on the command line.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/pactly/internal/constants"
)

// Scheme is the --config value that asks for the connection string stored
// under the default entry. "keyring:<name>" selects a named entry.
const Scheme = "keyring"

var (
	ErrNotFound           = errors.New("connection string not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func entry(name string) string {
	if name == "" {
		return constants.DefaultKeyringUser
	}
	return constants.DefaultKeyringUser + ":" + name
}

// GetConnectionString returns the connection string saved under name. An
// empty name is the default entry.
func GetConnectionString(name string) (string, error) {
	connStr, err := keyring.Get(constants.AppName, entry(name))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

func SetConnectionString(name, connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if IsReference(connStr) {
		return errors.New("connection string cannot point back at the keyring")
	}
	if err := keyring.Set(constants.AppName, entry(name), connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString(name string) error {
	if err := keyring.Delete(constants.AppName, entry(name)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	return nil
}

// IsReference reports whether target names a keyring entry rather than a
// path or URL.
func IsReference(target string) bool {
	return target == Scheme || strings.HasPrefix(target, Scheme+":")
}

// Resolve returns target unchanged unless it is a keyring reference, in
// which case the stored connection string is returned.
func Resolve(target string) (string, error) {
	if !IsReference(target) {
		return target, nil
	}
	name := strings.TrimPrefix(strings.TrimPrefix(target, Scheme), ":")
	return GetConnectionString(name)
}

// IsAvailable is a best-effort probe of the OS keyring.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
