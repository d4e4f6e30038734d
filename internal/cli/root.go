package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/pactly/internal/activity"
	"github.com/julianstephens/pactly/internal/agent"
	"github.com/julianstephens/pactly/internal/backup"
	"github.com/julianstephens/pactly/internal/config"
	"github.com/julianstephens/pactly/internal/constants"
	"github.com/julianstephens/pactly/internal/logger"
	"github.com/julianstephens/pactly/internal/models"
	"github.com/julianstephens/pactly/internal/pact"
	"github.com/julianstephens/pactly/internal/room"
	"github.com/julianstephens/pactly/internal/session"
	"github.com/julianstephens/pactly/internal/storage"
	"github.com/julianstephens/pactly/internal/storage/jsonfile"
	"github.com/julianstephens/pactly/internal/storage/postgres"
	"github.com/julianstephens/pactly/internal/storage/redisstore"
	"github.com/julianstephens/pactly/internal/storage/sqlite"
	"github.com/julianstephens/pactly/internal/validation"
)

var (
	ErrNotSignedIn  = errors.New("not signed in, run 'pactly login' first")
	ErrPactNotFound = errors.New("pact not found")
	ErrRoomNotFound = errors.New("room not found")
)

// Context is handed to every command's Run method.
type Context struct {
	Target   config.Target
	Backend  storage.Backend
	Store    *storage.Store
	Sessions *session.Manager
	Pacts    *pact.Service
	Rooms    *room.Service
	Feed     *activity.Feed
	Agent    *agent.Client
	Validate *validator.Validate
	Backups  *backup.Manager

	Out io.Writer
	In  io.Reader
	now func() time.Time
}

// OpenBackend builds the backend a resolved target selects. Nothing is
// opened yet; callers run Init or Load.
func OpenBackend(t config.Target) (storage.Backend, error) {
	switch t.Kind {
	case config.KindPostgres:
		if _, err := postgres.ValidateConnString(t.Location); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store the full string with 'pactly keyring set' or use .pgpass", err)
			}
			return nil, err
		}
		return postgres.New(t.Location), nil
	case config.KindRedis:
		if err := redisstore.ValidateURL(t.Location); err != nil {
			return nil, err
		}
		return redisstore.New(t.Location), nil
	case config.KindJSON:
		return jsonfile.NewStore(t.Location), nil
	default:
		return sqlite.NewStore(t.Location), nil
	}
}

// NewContext wires the services over backend.
func NewContext(t config.Target, backend storage.Backend, agentURL string) *Context {
	store := storage.NewStore(backend)
	validate := validation.NewInputValidator()

	var backups *backup.Manager
	if t.IsFile() {
		backups = backup.NewManager(t.Location)
	} else {
		backups = backup.NewManagerInDir(filepath.Join(t.Dir, constants.BackupDirName))
	}

	return &Context{
		Target:   t,
		Backend:  backend,
		Store:    store,
		Sessions: session.NewManager(store.Users(), store.Sessions(), validate),
		Pacts:    pact.NewService(store.Pacts()),
		Rooms:    room.NewService(store.Rooms()),
		Feed:     activity.NewFeed(store.Activity()),
		Agent:    agent.NewClient(agentURL),
		Validate: validate,
		Backups:  backups,
		Out:      os.Stdout,
		In:       os.Stdin,
		now:      time.Now,
	}
}

// SetClock points every service at the same time source.
func (c *Context) SetClock(now func() time.Time) {
	c.now = now
	c.Store.SetClock(now)
	c.Sessions.SetClock(now)
	c.Pacts.SetClock(now)
	c.Rooms.SetClock(now)
	c.Feed.SetClock(now)
	c.Backups.SetClock(now)
}

func (c *Context) Now() time.Time {
	return c.now()
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a yes/no question on In. Anything but y or yes is a no.
func (c *Context) Confirm(prompt string) bool {
	c.Printf("%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// RequireUser returns the signed-in user.
func (c *Context) RequireUser(ctx context.Context) (*models.User, error) {
	user := c.Sessions.CurrentUser(ctx)
	if user == nil {
		return nil, ErrNotSignedIn
	}
	return user, nil
}

// OwnedPact loads a pact that belongs to the signed-in user. Pacts of other
// users are reported as missing.
func (c *Context) OwnedPact(ctx context.Context, id string) (*models.User, *models.Pact, error) {
	user, err := c.RequireUser(ctx)
	if err != nil {
		return nil, nil, err
	}
	p := c.Pacts.GetPact(ctx, id)
	if p == nil || p.UserID != user.ID {
		return user, nil, fmt.Errorf("%w: %s", ErrPactNotFound, id)
	}
	return user, p, nil
}

// RequireRoom loads a room by id.
func (c *Context) RequireRoom(ctx context.Context, id string) (*models.Room, error) {
	r := c.Rooms.GetRoom(ctx, id)
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}
	return r, nil
}

// PerformAutomaticBackup snapshots the signed-in user's data. Failures are
// logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup(ctx context.Context) {
	if c.Sessions.CurrentUser(ctx) == nil {
		return
	}
	if _, err := c.Backups.CreateBackup(c.Store.ExportAllData(ctx)); err != nil {
		logger.Warn("automatic backup failed", "error", err)
	}
}
