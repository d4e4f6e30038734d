package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/pactly/internal/cli"
	"github.com/julianstephens/pactly/internal/config"
	"github.com/julianstephens/pactly/internal/keyring"
	"github.com/julianstephens/pactly/internal/storage/postgres"
	"github.com/julianstephens/pactly/internal/storage/redisstore"
)

// KeyringSetCmd stores a store connection string in the OS keyring. Use it
// afterwards with --config keyring (or keyring:<name>).
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"postgres:// or redis:// connection string."`
	Name             string `help:"Entry name, for keeping several stores."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	switch config.DetectKind(cmd.ConnectionString) {
	case config.KindPostgres:
		if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			ctx.Println(cli.Warn("Connection string contains a password. It is stored as-is in the OS keyring."))
		}
	case config.KindRedis:
		if err := redisstore.ValidateURL(cmd.ConnectionString); err != nil {
			return err
		}
	default:
		return errors.New("connection string must start with postgres://, postgresql://, redis:// or rediss://")
	}

	if err := keyring.SetConnectionString(cmd.Name, cmd.ConnectionString); err != nil {
		return err
	}
	ref := keyring.Scheme
	if cmd.Name != "" {
		ref += ":" + cmd.Name
	}
	ctx.Println("✓ Connection string stored in OS keyring")
	ctx.Printf("  Use it with: pactly --config %s\n", ref)
	return nil
}

type KeyringGetCmd struct {
	Name string `help:"Entry name."`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString(cmd.Name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring, use 'pactly keyring set' to store one")
		}
		return err
	}
	ctx.Println(maskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct {
	Name string `help:"Entry name."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(cmd.Name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")
	if _, err := keyring.GetConnectionString(""); err == nil {
		ctx.Println("✓ Default connection string is stored")
	} else {
		ctx.Println("ℹ No default connection string stored")
	}
	return nil
}

// maskPassword hides the password of URL-style and key=value connection
// strings.
func maskPassword(connStr string) string {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "****")
			// userinfo escaping turns the mask into %2A
			return strings.Replace(u.String(), ":%2A%2A%2A%2A@", ":****@", 1)
		}
		return connStr
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		for i, part := range parts {
			if strings.HasPrefix(part, "password=") {
				parts[i] = "password=****"
			}
		}
		return strings.Join(parts, " ")
	}
	return connStr
}
