// Package activity keeps the supporter activity feed, newest entry first.
package activity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/pactly/internal/models"
	"github.com/julianstephens/pactly/internal/storage"
)

type Feed struct {
	entries storage.ActivityRepository
	now     func() time.Time
}

func NewFeed(entries storage.ActivityRepository) *Feed {
	return &Feed{entries: entries, now: time.Now}
}

func (f *Feed) SetClock(now func() time.Time) {
	f.now = now
}

// Append stamps a and puts it at the head of the feed.
func (f *Feed) Append(ctx context.Context, a models.SupporterActivity) models.SupporterActivity {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = f.now().UTC()
	}
	f.entries.Save(ctx, append([]models.SupporterActivity{a}, f.entries.Load(ctx)...))
	return a
}

// List returns up to limit entries, newest first. A limit of zero or less
// returns everything.
func (f *Feed) List(ctx context.Context, limit int) []models.SupporterActivity {
	all := f.entries.Load(ctx)
	if limit > 0 && len(all) > limit {
		return all[:limit]
	}
	return all
}

// ForPact returns the entries that mention a pact by title.
func (f *Feed) ForPact(ctx context.Context, title string) []models.SupporterActivity {
	out := []models.SupporterActivity{}
	for _, a := range f.entries.Load(ctx) {
		if a.PactTitle == title {
			out = append(out, a)
		}
	}
	return out
}
