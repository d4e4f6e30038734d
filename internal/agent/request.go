package agent

import (
	"github.com/julianstephens/pactly/internal/constants"
	"github.com/julianstephens/pactly/internal/models"
)

// Request is the body sent to the planning agent.
type Request struct {
	Pact              PactInfo            `json:"pact"`
	UserProfile       UserProfile         `json:"user_profile"`
	SupporterFeedback []SupporterFeedback `json:"supporter_feedback"`
}

type PactInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Cadence     string `json:"cadence"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type UserProfile struct {
	Name           string   `json:"name"`
	CurrentStreak  int      `json:"current_streak"`
	LastCheckIn    string   `json:"last_check_in"`
	CompletionRate int      `json:"completion_rate"`
	RecentCheckIns []string `json:"recent_check_ins"`
}

type SupporterFeedback struct {
	SupporterName string `json:"supporter_name"`
	Feedback      string `json:"feedback"`
}

// BuildRequest shapes a request from a pact and its owner. Streak and
// completion rate come from the pact; check-ins are newest first. Supporters
// without feedback are skipped, and extra feedback is appended as given.
func BuildRequest(pact models.Pact, user *models.User, extra []SupporterFeedback) Request {
	req := Request{
		Pact: PactInfo{
			Title:       pact.Title,
			Description: pact.Description,
			Category:    pact.Category,
			Cadence:     pact.Cadence,
			StartDate:   pact.StartDate,
			EndDate:     pact.EndDate,
		},
		UserProfile: UserProfile{
			CurrentStreak:  pact.Streak,
			CompletionRate: pact.CompletionRate,
			RecentCheckIns: []string{},
		},
		SupporterFeedback: []SupporterFeedback{},
	}

	if user != nil {
		req.UserProfile.Name = user.Name
	}

	if len(pact.CheckIns) > 0 {
		req.UserProfile.LastCheckIn = pact.CheckIns[0].Date
	}
	for i, c := range pact.CheckIns {
		if i == constants.RecentCheckInLimit {
			break
		}
		req.UserProfile.RecentCheckIns = append(req.UserProfile.RecentCheckIns, c.Note)
	}

	for _, s := range pact.Supporters {
		if s.Feedback == "" {
			continue
		}
		req.SupporterFeedback = append(req.SupporterFeedback, SupporterFeedback{
			SupporterName: s.Name,
			Feedback:      s.Feedback,
		})
	}
	req.SupporterFeedback = append(req.SupporterFeedback, extra...)

	return req
}
