package models

import (
	"strings"
	"time"
)

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// User is one account. The aggregate fields are display values set by the
// owner or by seeding; nothing recomputes them from pacts.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Avatar         string    `json:"avatar,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	JoinedAt       time.Time `json:"joinedAt"`
	CurrentStreak  int       `json:"currentStreak"`
	LongestStreak  int       `json:"longestStreak"`
	CompletionRate int       `json:"completionRate"`
	TotalPacts     int       `json:"totalPacts"`
	CompletedPacts int       `json:"completedPacts"`
	Tier           Tier      `json:"tier"`
	TrustScore     int       `json:"trustScore"`
}

// Session binds an opaque token to a user id. It never expires.
type Session struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

// SameEmail compares addresses case-insensitively, ignoring surrounding space.
func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// FindUserByEmail returns the index of the user with the given email, or -1.
func FindUserByEmail(users []User, email string) int {
	for i := range users {
		if SameEmail(users[i].Email, email) {
			return i
		}
	}
	return -1
}

// FindUser returns the index of the user with the given id, or -1.
func FindUser(users []User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
