package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/pactly/internal/models"
)

func TestBuildRequest(t *testing.T) {
	pact := models.Pact{
		Title:          "Run a 10K",
		Description:    "Build up",
		Category:       "fitness",
		Cadence:        "daily",
		StartDate:      "2026-05-01",
		EndDate:        "2026-07-01",
		Streak:         4,
		CompletionRate: 75,
		Supporters: []models.Supporter{
			{Name: "Priya", Feedback: "Great pacing"},
			{Name: "Quiet"},
		},
	}
	for i := 7; i >= 1; i-- {
		pact.CheckIns = append(pact.CheckIns, models.DailyCheckIn{Date: "2026-05-0" + string(rune('0'+i)), Note: "note " + string(rune('0'+i))})
	}

	req := BuildRequest(pact, &models.User{Name: "Jordan"}, []SupporterFeedback{{SupporterName: "Coach", Feedback: "Rest Sundays"}})

	assert.Equal(t, "Jordan", req.UserProfile.Name)
	assert.Equal(t, 4, req.UserProfile.CurrentStreak)
	assert.Equal(t, 75, req.UserProfile.CompletionRate)
	assert.Equal(t, "2026-05-07", req.UserProfile.LastCheckIn)
	assert.Equal(t, []string{"note 7", "note 6", "note 5", "note 4", "note 3"}, req.UserProfile.RecentCheckIns)
	assert.Equal(t, []SupporterFeedback{
		{SupporterName: "Priya", Feedback: "Great pacing"},
		{SupporterName: "Coach", Feedback: "Rest Sundays"},
	}, req.SupporterFeedback)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	body := string(data)
	for _, key := range []string{`"pact"`, `"user_profile"`, `"supporter_feedback"`, `"start_date"`, `"end_date"`, `"current_streak"`, `"last_check_in"`, `"completion_rate"`, `"recent_check_ins"`, `"supporter_name"`} {
		assert.Contains(t, body, key)
	}
}

func TestBuildRequestEmptyPact(t *testing.T) {
	req := BuildRequest(models.Pact{Title: "New"}, nil, nil)

	assert.Empty(t, req.UserProfile.Name)
	assert.Empty(t, req.UserProfile.LastCheckIn)
	assert.NotNil(t, req.UserProfile.RecentCheckIns)
	assert.NotNil(t, req.SupporterFeedback)
}
