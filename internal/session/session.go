// Package session tracks which user is using this device. The token is a
// local marker, not a credential: passwords are checked for shape only.
package session

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/julianstephens/pactly/internal/constants"
	"github.com/julianstephens/pactly/internal/logger"
	"github.com/julianstephens/pactly/internal/models"
	"github.com/julianstephens/pactly/internal/storage"
	"github.com/julianstephens/pactly/internal/validation"
)

const ErrAccountExists = "An account with this email already exists"

// Result reports the outcome of a sign-in attempt. Validation failures are
// results, never errors.
type Result struct {
	Success bool
	Error   string
	User    *models.User
}

func failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

type Manager struct {
	users    storage.UserRepository
	sessions storage.SessionRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewManager(users storage.UserRepository, sessions storage.SessionRepository, validate *validator.Validate) *Manager {
	return &Manager{
		users:    users,
		sessions: sessions,
		validate: validate,
		now:      time.Now,
	}
}

// SetClock replaces the time source used for joinedAt.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// Login signs in as the user with this email, creating the account first if
// none exists.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	email = strings.TrimSpace(email)
	if err := m.validate.Struct(validation.Credentials{Email: email, Password: password}); err != nil {
		return failure(validation.FirstMessage(err))
	}

	users := m.users.Load(ctx)
	if idx := models.FindUserByEmail(users, email); idx >= 0 {
		user := users[idx]
		m.open(ctx, user.ID)
		logger.Debug("signed in", "user", user.ID)
		return Result{Success: true, User: &user}
	}

	user := m.newUser(nameFromEmail(email), email)
	m.users.Save(ctx, append(users, user))
	m.open(ctx, user.ID)
	logger.Debug("signed in with new account", "user", user.ID)
	return Result{Success: true, User: &user}
}

// Register creates a new account and signs in. A taken email is rejected.
func (m *Manager) Register(ctx context.Context, name, email, password string) Result {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if err := m.validate.Struct(validation.Registration{Name: name, Email: email, Password: password}); err != nil {
		return failure(validation.FirstMessage(err))
	}

	users := m.users.Load(ctx)
	if models.FindUserByEmail(users, email) >= 0 {
		return failure(ErrAccountExists)
	}

	user := m.newUser(name, email)
	m.users.Save(ctx, append(users, user))
	m.open(ctx, user.ID)
	logger.Debug("registered", "user", user.ID)
	return Result{Success: true, User: &user}
}

// Logout forgets the session. User records are kept.
func (m *Manager) Logout(ctx context.Context) {
	m.sessions.Clear(ctx)
}

// CurrentUser returns the signed-in user, or nil.
func (m *Manager) CurrentUser(ctx context.Context) *models.User {
	session, ok := m.sessions.Load(ctx)
	if !ok {
		return nil
	}
	users := m.users.Load(ctx)
	idx := models.FindUser(users, session.UserID)
	if idx < 0 {
		return nil
	}
	user := users[idx]
	return &user
}

// UpdateProfile replaces the signed-in user's record. The id and email
// cannot change. Returns nil when nobody is signed in.
func (m *Manager) UpdateProfile(ctx context.Context, updated models.User) *models.User {
	session, ok := m.sessions.Load(ctx)
	if !ok {
		return nil
	}
	users := m.users.Load(ctx)
	idx := models.FindUser(users, session.UserID)
	if idx < 0 {
		return nil
	}

	updated.ID = users[idx].ID
	updated.Email = users[idx].Email
	updated.JoinedAt = users[idx].JoinedAt
	users[idx] = updated
	m.users.Save(ctx, users)
	return &updated
}

func (m *Manager) open(ctx context.Context, userID string) {
	m.sessions.Save(ctx, models.Session{UserID: userID, Token: uuid.NewString()})
}

func (m *Manager) newUser(name, email string) models.User {
	return models.User{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		JoinedAt:   m.now().UTC(),
		Tier:       models.Tier(constants.DefaultTier),
		TrustScore: constants.DefaultTrustScore,
	}
}

// nameFromEmail turns "jane.doe@x" into "Jane Doe".
func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	for i, p := range parts {
		r := []rune(p)
		parts[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	if len(parts) == 0 {
		return local
	}
	return strings.Join(parts, " ")
}
