// Package room manages community rooms, their posts and group challenges.
package room

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/pactly/internal/logger"
	"github.com/julianstephens/pactly/internal/models"
	"github.com/julianstephens/pactly/internal/storage"
)

type Service struct {
	rooms storage.RoomRepository
	now   func() time.Time
}

func NewService(rooms storage.RoomRepository) *Service {
	return &Service{rooms: rooms, now: time.Now}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) ListRooms(ctx context.Context) []models.Room {
	return s.rooms.Load(ctx)
}

// GetRoom returns the room with id, or nil.
func (s *Service) GetRoom(ctx context.Context, id string) *models.Room {
	for _, r := range s.rooms.Load(ctx) {
		if r.ID == id {
			return &r
		}
	}
	return nil
}

// RoomsForUser returns the rooms userID currently belongs to.
func (s *Service) RoomsForUser(ctx context.Context, userID string) []models.Room {
	out := []models.Room{}
	for _, r := range s.rooms.Load(ctx) {
		if r.IsMember(userID) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Service) CreateRoom(ctx context.Context, r models.Room) models.Room {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now().UTC()
	}
	if r.Members == nil {
		r.Members = []string{}
	}
	if r.Posts == nil {
		r.Posts = []models.RoomPost{}
	}
	if r.Challenges == nil {
		r.Challenges = []models.RoomChallenge{}
	}
	if r.MemberCount < len(r.Members) {
		r.MemberCount = len(r.Members)
	}

	s.rooms.Save(ctx, append(s.rooms.Load(ctx), r))
	logger.Debug("room created", "room", r.ID)
	return r
}

// JoinRoom adds userID to the room once. memberCount only ever grows: it
// becomes the larger of its old value plus one and the member list length.
func (s *Service) JoinRoom(ctx context.Context, roomID, userID string) *models.Room {
	return s.mutate(ctx, roomID, func(r *models.Room) bool {
		if r.IsMember(userID) {
			return false
		}
		r.Members = append(r.Members, userID)
		r.MemberCount = max(r.MemberCount+1, len(r.Members))
		return true
	})
}

// LeaveRoom removes userID from the members. memberCount counts everyone
// who ever joined and is left alone.
func (s *Service) LeaveRoom(ctx context.Context, roomID, userID string) *models.Room {
	return s.mutate(ctx, roomID, func(r *models.Room) bool {
		kept := make([]string, 0, len(r.Members))
		for _, m := range r.Members {
			if m != userID {
				kept = append(kept, m)
			}
		}
		if len(kept) == len(r.Members) {
			return false
		}
		r.Members = kept
		return true
	})
}

// AddPost puts post at the top of the room feed. Likes start empty.
func (s *Service) AddPost(ctx context.Context, roomID string, post models.RoomPost) *models.Room {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = s.now().UTC()
	}
	post.LikedBy = []string{}
	post.Likes = 0

	return s.mutate(ctx, roomID, func(r *models.Room) bool {
		r.Posts = append([]models.RoomPost{post}, r.Posts...)
		return true
	})
}

// LikePost toggles userID in the post's likedBy set and resyncs likes.
func (s *Service) LikePost(ctx context.Context, roomID, postID, userID string) *models.Room {
	return s.mutate(ctx, roomID, func(r *models.Room) bool {
		for i := range r.Posts {
			p := &r.Posts[i]
			if p.ID != postID {
				continue
			}
			if idx := index(p.LikedBy, userID); idx >= 0 {
				p.LikedBy = append(p.LikedBy[:idx:idx], p.LikedBy[idx+1:]...)
			} else {
				p.LikedBy = append(p.LikedBy, userID)
			}
			p.Likes = len(p.LikedBy)
			return true
		}
		return false
	})
}

func (s *Service) AddChallenge(ctx context.Context, roomID string, c models.RoomChallenge) *models.Room {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = models.ChallengeUpcoming
	}
	if c.Milestones == nil {
		c.Milestones = []models.ChallengeMilestone{}
	}
	if c.Participants == nil {
		c.Participants = []models.ChallengeParticipant{}
	}
	return s.mutate(ctx, roomID, func(r *models.Room) bool {
		r.Challenges = append(r.Challenges, c)
		return true
	})
}

// JoinChallenge enrolls userID with zero progress. A user already taking
// part is not added twice.
func (s *Service) JoinChallenge(ctx context.Context, roomID, challengeID, userID, userName string) *models.Room {
	joined := s.now().UTC()
	return s.mutateChallenge(ctx, roomID, challengeID, func(c *models.RoomChallenge) bool {
		if c.Participant(userID) >= 0 {
			return false
		}
		c.Participants = append(c.Participants, models.ChallengeParticipant{
			UserID:              userID,
			UserName:            userName,
			Progress:            0,
			CompletedMilestones: []string{},
			Verified:            false,
			JoinedAt:            joined,
		})
		return true
	})
}

// UpdateChallengeProgress stores progress as given. Range checks belong to
// the caller.
func (s *Service) UpdateChallengeProgress(ctx context.Context, roomID, challengeID, userID string, progress int) *models.Room {
	return s.mutateChallenge(ctx, roomID, challengeID, func(c *models.RoomChallenge) bool {
		i := c.Participant(userID)
		if i < 0 {
			return false
		}
		c.Participants[i].Progress = progress
		return true
	})
}

// CompleteMilestone records milestoneID against the participant once.
// Milestone ids the challenge does not declare are ignored.
func (s *Service) CompleteMilestone(ctx context.Context, roomID, challengeID, userID, milestoneID string) *models.Room {
	return s.mutateChallenge(ctx, roomID, challengeID, func(c *models.RoomChallenge) bool {
		i := c.Participant(userID)
		if i < 0 || !hasMilestone(c, milestoneID) {
			return false
		}
		p := &c.Participants[i]
		if index(p.CompletedMilestones, milestoneID) >= 0 {
			return false
		}
		p.CompletedMilestones = append(p.CompletedMilestones, milestoneID)
		return true
	})
}

func (s *Service) mutateChallenge(ctx context.Context, roomID, challengeID string, fn func(c *models.RoomChallenge) bool) *models.Room {
	return s.mutate(ctx, roomID, func(r *models.Room) bool {
		for i := range r.Challenges {
			if r.Challenges[i].ID == challengeID {
				return fn(&r.Challenges[i])
			}
		}
		return false
	})
}

// mutate applies fn to the room with id, saving only when fn reports a
// change. Returns a copy of the room, or nil when the id is unknown.
func (s *Service) mutate(ctx context.Context, id string, fn func(r *models.Room) bool) *models.Room {
	rooms := s.rooms.Load(ctx)
	for i := range rooms {
		if rooms[i].ID != id {
			continue
		}
		if fn(&rooms[i]) {
			s.rooms.Save(ctx, rooms)
		}
		r := rooms[i]
		return &r
	}
	logger.Debug("room not found", "room", id)
	return nil
}

func hasMilestone(c *models.RoomChallenge, id string) bool {
	for _, m := range c.Milestones {
		if m.ID == id {
			return true
		}
	}
	return false
}

func index(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
