package storage

import (
	"context"

	"github.com/julianstephens/pactly/internal/logger"
	"github.com/julianstephens/pactly/internal/models"
)

// ExportAllData snapshots the signed-in user, that user's pacts, every room
// and the supporter activity feed. Without a session the user is nil and no
// pacts are included.
func (s *Store) ExportAllData(ctx context.Context) models.ExportData {
	out := models.ExportData{
		Pacts:             []models.Pact{},
		Rooms:             s.Rooms().Load(ctx),
		SupporterActivity: s.Activity().Load(ctx),
		ExportedAt:        s.now().UTC(),
	}

	session, ok := s.Sessions().Load(ctx)
	if !ok {
		return out
	}

	users := s.Users().Load(ctx)
	if idx := models.FindUser(users, session.UserID); idx >= 0 {
		user := users[idx]
		out.User = &user
	}

	for _, p := range s.Pacts().Load(ctx) {
		if p.UserID == session.UserID {
			out.Pacts = append(out.Pacts, p)
		}
	}
	return out
}

// ImportData writes an export document back. The exported user's record and
// pacts replace the stored ones; rooms and the activity feed are replaced
// wholesale. Pacts in a document without a user have no owner to attach to
// and are skipped. The session is left untouched.
func (s *Store) ImportData(ctx context.Context, data models.ExportData) {
	if data.User != nil {
		users := s.Users().Load(ctx)
		if idx := models.FindUser(users, data.User.ID); idx >= 0 {
			users[idx] = *data.User
		} else {
			users = append(users, *data.User)
		}
		s.Users().Save(ctx, users)

		kept := []models.Pact{}
		for _, p := range s.Pacts().Load(ctx) {
			if p.UserID != data.User.ID {
				kept = append(kept, p)
			}
		}
		s.Pacts().Save(ctx, append(kept, data.Pacts...))
	} else if len(data.Pacts) > 0 {
		logger.Warn("import has pacts but no user, pacts skipped", "pacts", len(data.Pacts))
	}

	if data.Rooms != nil {
		s.Rooms().Save(ctx, data.Rooms)
	}
	if data.SupporterActivity != nil {
		s.Activity().Save(ctx, data.SupporterActivity)
	}

	logger.Info("import applied", "pacts", len(data.Pacts), "rooms", len(data.Rooms))
}
