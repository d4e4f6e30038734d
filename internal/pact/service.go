// Package pact holds the operations that mutate a pact and its owned
// collections. Every call re-reads the whole pact collection, applies one
// change and writes the collection back. Unknown ids are silent no-ops.
package pact

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/pactly/internal/constants"
	"github.com/julianstephens/pactly/internal/logger"
	"github.com/julianstephens/pactly/internal/models"
	"github.com/julianstephens/pactly/internal/storage"
)

type Service struct {
	pacts storage.PactRepository
	now   func() time.Time
}

func NewService(pacts storage.PactRepository) *Service {
	return &Service{
		pacts: pacts,
		now:   time.Now,
	}
}

// SetClock replaces the time source used for timestamps.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// ListPacts returns the pacts owned by userID in stored order.
func (s *Service) ListPacts(ctx context.Context, userID string) []models.Pact {
	out := []models.Pact{}
	for _, p := range s.pacts.Load(ctx) {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

// GetPact returns the pact with id, or nil.
func (s *Service) GetPact(ctx context.Context, id string) *models.Pact {
	for _, p := range s.pacts.Load(ctx) {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

// CreatePact appends p. The caller supplies the id and required fields;
// missing timestamps are filled in and nil child lists become empty.
func (s *Service) CreatePact(ctx context.Context, p models.Pact) models.Pact {
	now := s.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	p.EnsureCollections()

	s.pacts.Save(ctx, append(s.pacts.Load(ctx), p))
	logger.Debug("pact created", "pact", p.ID)
	return p
}

// UpdatePact replaces the stored pact with the same id and stamps updatedAt.
func (s *Service) UpdatePact(ctx context.Context, p models.Pact) *models.Pact {
	return s.mutate(ctx, p.ID, func(stored *models.Pact) bool {
		*stored = p
		stored.EnsureCollections()
		return true
	})
}

// DeletePact removes the pact outright. Feed entries naming it are kept.
func (s *Service) DeletePact(ctx context.Context, id string) bool {
	pacts := s.pacts.Load(ctx)
	kept := make([]models.Pact, 0, len(pacts))
	for _, p := range pacts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(pacts) {
		return false
	}
	s.pacts.Save(ctx, kept)
	logger.Debug("pact deleted", "pact", id)
	return true
}

// AddCheckIn records a check-in as the newest entry and adds one to the
// streak. The streak grows on every check-in, even several on one day.
func (s *Service) AddCheckIn(ctx context.Context, pactID string, c models.DailyCheckIn) *models.Pact {
	now := s.now()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Date == "" {
		c.Date = now.Format(constants.DateFormat)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now.UTC()
	}
	if c.CompletedGoals == nil {
		c.CompletedGoals = []string{}
	}

	return s.mutate(ctx, pactID, func(p *models.Pact) bool {
		p.CheckIns = append([]models.DailyCheckIn{c}, p.CheckIns...)
		p.Streak++
		return true
	})
}

// ToggleMicroGoal flips one goal and recomputes the completion rate.
func (s *Service) ToggleMicroGoal(ctx context.Context, pactID, goalID string) *models.Pact {
	today := s.now().Format(constants.DateFormat)
	return s.mutate(ctx, pactID, func(p *models.Pact) bool {
		for i := range p.MicroGoals {
			g := &p.MicroGoals[i]
			if g.ID != goalID {
				continue
			}
			g.Completed = !g.Completed
			if g.Completed {
				g.CompletedDate = today
			} else {
				g.CompletedDate = ""
			}
			p.CompletionRate = models.CompletionRate(p.MicroGoals)
			return true
		}
		return false
	})
}

// ToggleWeeklyDay flips the completed flag of one plan day. An index
// outside the plan changes nothing.
func (s *Service) ToggleWeeklyDay(ctx context.Context, pactID string, dayIndex int) *models.Pact {
	return s.mutate(ctx, pactID, func(p *models.Pact) bool {
		if dayIndex < 0 || dayIndex >= len(p.WeeklyPlan) {
			return false
		}
		p.WeeklyPlan[dayIndex].Completed = !p.WeeklyPlan[dayIndex].Completed
		return true
	})
}

// AddVerification appends v as pending, whatever status it arrived with.
func (s *Service) AddVerification(ctx context.Context, pactID string, v models.Verification) *models.Pact {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.SubmittedAt.IsZero() {
		v.SubmittedAt = s.now().UTC()
	}
	v.Status = models.VerificationPending
	v.VerifiedBy = ""
	v.VerifiedAt = nil

	return s.mutate(ctx, pactID, func(p *models.Pact) bool {
		p.Verifications = append(p.Verifications, v)
		return true
	})
}

// ConfirmVerification moves a verification to verified. Confirming again
// with the same verifier keeps the original stamp; a different verifier
// overwrites it. There is no way back to pending.
func (s *Service) ConfirmVerification(ctx context.Context, pactID, verificationID, verifier string) *models.Pact {
	now := s.now().UTC()
	return s.mutate(ctx, pactID, func(p *models.Pact) bool {
		for i := range p.Verifications {
			v := &p.Verifications[i]
			if v.ID != verificationID {
				continue
			}
			if v.Status == models.VerificationVerified && v.VerifiedBy == verifier {
				return false
			}
			v.Status = models.VerificationVerified
			v.VerifiedBy = verifier
			v.VerifiedAt = &now
			return true
		}
		return false
	})
}

// AddWeeklyReflection appends r without checking for an existing entry for
// the same week; callers do that with Pact.HasReflectionForWeek. A zero week
// number is filled from the pact's start date.
func (s *Service) AddWeeklyReflection(ctx context.Context, pactID string, r models.WeeklyReflection) *models.Pact {
	now := s.now()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now.UTC()
	}

	return s.mutate(ctx, pactID, func(p *models.Pact) bool {
		if r.WeekNumber == 0 {
			r.WeekNumber = p.WeekNumber(now)
		}
		p.Reflections = append(p.Reflections, r)
		return true
	})
}

// GenerateProgressCard snapshots the pact's current numbers into a new card.
// The card is never recomputed afterwards.
func (s *Service) GenerateProgressCard(ctx context.Context, pactID string) *models.ProgressCard {
	var card *models.ProgressCard
	s.mutate(ctx, pactID, func(p *models.Pact) bool {
		c := models.ProgressCard{
			ID:                uuid.NewString(),
			PactID:            p.ID,
			Title:             p.Title,
			IdentityStatement: p.IdentityStatement,
			Stats: models.ProgressStats{
				StreakDays:     p.Streak,
				GoalsCompleted: models.CompletedGoals(p.MicroGoals),
				TotalGoals:     len(p.MicroGoals),
				CompletionRate: p.CompletionRate,
				VerifiedCount:  p.VerifiedCount(),
			},
			Shared:    false,
			CreatedAt: s.now().UTC(),
		}
		p.ProgressCards = append(p.ProgressCards, c)
		card = &c
		return true
	})
	return card
}

// ShareProgressCard marks a card shared. Sharing cannot be undone.
func (s *Service) ShareProgressCard(ctx context.Context, pactID, cardID string) *models.Pact {
	return s.mutate(ctx, pactID, func(p *models.Pact) bool {
		for i := range p.ProgressCards {
			if p.ProgressCards[i].ID == cardID {
				if p.ProgressCards[i].Shared {
					return false
				}
				p.ProgressCards[i].Shared = true
				return true
			}
		}
		return false
	})
}

// AddSupporter appends a supporter to the pact.
func (s *Service) AddSupporter(ctx context.Context, pactID string, sup models.Supporter) *models.Pact {
	if sup.ID == "" {
		sup.ID = uuid.NewString()
	}
	return s.mutate(ctx, pactID, func(p *models.Pact) bool {
		p.Supporters = append(p.Supporters, sup)
		return true
	})
}

// SetStatus moves the pact to another declared status. Unknown statuses are
// ignored.
func (s *Service) SetStatus(ctx context.Context, pactID string, status models.PactStatus) *models.Pact {
	if !models.ValidStatus(status) {
		return s.GetPact(ctx, pactID)
	}
	return s.mutate(ctx, pactID, func(p *models.Pact) bool {
		if p.Status == status {
			return false
		}
		p.Status = status
		return true
	})
}

// mutate applies fn to the pact with id and saves the collection when fn
// reports a change. It returns a copy of the pact after fn, or nil when no
// pact has that id.
func (s *Service) mutate(ctx context.Context, id string, fn func(p *models.Pact) bool) *models.Pact {
	pacts := s.pacts.Load(ctx)
	for i := range pacts {
		if pacts[i].ID != id {
			continue
		}
		if fn(&pacts[i]) {
			pacts[i].UpdatedAt = s.now().UTC()
			s.pacts.Save(ctx, pacts)
		}
		p := pacts[i]
		return &p
	}
	logger.Debug("pact not found", "pact", id)
	return nil
}
