package models

import "time"

type ActivityType string

const (
	ActivityEncouragement ActivityType = "encouragement"
	ActivityVerification  ActivityType = "verification"
	ActivityNudge         ActivityType = "nudge"
)

// SupporterActivity refers to its pact by title only, so entries outlive
// the pact they mention.
type SupporterActivity struct {
	ID            string       `json:"id"`
	Type          ActivityType `json:"type"`
	SupporterName string       `json:"supporterName"`
	PactTitle     string       `json:"pactTitle"`
	Message       string       `json:"message"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// ExportData is the user-facing export document. Field names are part of
// the file format.
type ExportData struct {
	User              *User               `json:"user"`
	Pacts             []Pact              `json:"pacts"`
	Rooms             []Room              `json:"rooms"`
	SupporterActivity []SupporterActivity `json:"supporterActivity"`
	ExportedAt        time.Time           `json:"exportedAt"`
}
