package storage

import (
	"context"

	"github.com/julianstephens/pactly/internal/constants"
	"github.com/julianstephens/pactly/internal/models"
)

type (
	UserRepository     = Repository[models.User]
	PactRepository     = Repository[models.Pact]
	RoomRepository     = Repository[models.Room]
	ActivityRepository = Repository[models.SupporterActivity]
)

// SessionRepository holds the single device session.
type SessionRepository interface {
	Load(ctx context.Context) (models.Session, bool)
	Save(ctx context.Context, session models.Session)
	Clear(ctx context.Context)
}

type collection[T any] struct {
	store *Store
	key   string
}

func (c collection[T]) Load(ctx context.Context) []T {
	var items []T
	if !c.store.Get(ctx, c.key, &items) || items == nil {
		return []T{}
	}
	return items
}

func (c collection[T]) Save(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.store.Set(ctx, c.key, items)
}

func (s *Store) Users() UserRepository {
	return collection[models.User]{store: s, key: constants.KeyUsers}
}

func (s *Store) Pacts() PactRepository {
	return collection[models.Pact]{store: s, key: constants.KeyPacts}
}

func (s *Store) Rooms() RoomRepository {
	return collection[models.Room]{store: s, key: constants.KeyRooms}
}

func (s *Store) Activity() ActivityRepository {
	return collection[models.SupporterActivity]{store: s, key: constants.KeySupporterActivity}
}

func (s *Store) Sessions() SessionRepository {
	return sessionSlot{store: s}
}

type sessionSlot struct {
	store *Store
}

func (r sessionSlot) Load(ctx context.Context) (models.Session, bool) {
	var session models.Session
	if !r.store.Get(ctx, constants.KeySession, &session) || session.UserID == "" {
		return models.Session{}, false
	}
	return session, true
}

func (r sessionSlot) Save(ctx context.Context, session models.Session) {
	r.store.Set(ctx, constants.KeySession, session)
}

func (r sessionSlot) Clear(ctx context.Context) {
	r.store.remove(ctx, constants.KeySession)
}
