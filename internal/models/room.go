package models

import "time"

type ChallengeStatus string

const (
	ChallengeUpcoming  ChallengeStatus = "upcoming"
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
)

// Room is a community space. MemberCount counts everyone who ever joined
// and is allowed to differ from len(Members).
type Room struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Icon        string          `json:"icon,omitempty"`
	Members     []string        `json:"members"`
	MemberCount int             `json:"memberCount"`
	Posts       []RoomPost      `json:"posts"`
	Challenges  []RoomChallenge `json:"challenges"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// RoomPost keeps Likes equal to len(LikedBy).
type RoomPost struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	LikedBy   []string  `json:"likedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type RoomChallenge struct {
	ID                 string                 `json:"id"`
	Title              string                 `json:"title"`
	Description        string                 `json:"description"`
	StartDate          string                 `json:"startDate"`
	EndDate            string                 `json:"endDate"`
	Status             ChallengeStatus        `json:"status"`
	VerificationMethod string                 `json:"verificationMethod"`
	Prize              string                 `json:"prize,omitempty"`
	Milestones         []ChallengeMilestone   `json:"milestones"`
	Participants       []ChallengeParticipant `json:"participants"`
}

type ChallengeMilestone struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Target int    `json:"target"`
}

type ChallengeParticipant struct {
	UserID              string    `json:"userId"`
	UserName            string    `json:"userName"`
	Progress            int       `json:"progress"`
	CompletedMilestones []string  `json:"completedMilestones"`
	Verified            bool      `json:"verified"`
	JoinedAt            time.Time `json:"joinedAt"`
}

// IsMember reports whether userID is currently in the room.
func (r *Room) IsMember(userID string) bool {
	return indexOf(r.Members, userID) >= 0
}

// Participant returns the index of userID in the challenge, or -1.
func (c *RoomChallenge) Participant(userID string) int {
	for i := range c.Participants {
		if c.Participants[i].UserID == userID {
			return i
		}
	}
	return -1
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
