// Package seed populates a fresh store with demo data exactly once.
package seed

import (
	"context"
	"time"

	"github.com/julianstephens/pactly/internal/constants"
	"github.com/julianstephens/pactly/internal/logger"
	"github.com/julianstephens/pactly/internal/models"
	"github.com/julianstephens/pactly/internal/storage"
)

const DemoUserID = "demo-user"

// Seed writes demo users, pacts, rooms and activity the first time it runs
// against a store. A collection that already holds data is left alone, and
// no session is ever opened. It reports whether anything was seeded.
func Seed(ctx context.Context, store *storage.Store, now time.Time) bool {
	if store.Initialized(ctx) {
		logger.Debug("seed skipped, store already initialized")
		return false
	}

	if len(store.Users().Load(ctx)) == 0 {
		store.Users().Save(ctx, demoUsers(now))
	}
	if len(store.Pacts().Load(ctx)) == 0 {
		store.Pacts().Save(ctx, demoPacts(now))
	}
	if len(store.Rooms().Load(ctx)) == 0 {
		store.Rooms().Save(ctx, demoRooms(now))
	}
	if len(store.Activity().Load(ctx)) == 0 {
		store.Activity().Save(ctx, demoActivity(now))
	}

	store.MarkInitialized(ctx)
	logger.Info("store seeded with demo data")
	return true
}

func day(now time.Time, offset int) string {
	return now.AddDate(0, 0, offset).Format(constants.DateFormat)
}

func demoUsers(now time.Time) []models.User {
	return []models.User{
		{
			ID:             DemoUserID,
			Name:           "Jordan Rivera",
			Email:          "jordan@pactly.app",
			Bio:            "Building one small habit at a time.",
			JoinedAt:       now.AddDate(0, -3, 0),
			CurrentStreak:  12,
			LongestStreak:  21,
			CompletionRate: 68,
			TotalPacts:     2,
			CompletedPacts: 0,
			Tier:           models.TierSilver,
			TrustScore:     72,
		},
		{
			ID:            "demo-supporter",
			Name:          "Priya Shah",
			Email:         "priya@pactly.app",
			JoinedAt:      now.AddDate(0, -5, 0),
			CurrentStreak: 30,
			LongestStreak: 45,
			Tier:          models.TierGold,
			TrustScore:    88,
		},
	}
}

func demoPacts(now time.Time) []models.Pact {
	verifiedAt := now.AddDate(0, 0, -2)

	run := models.Pact{
		ID:                 "demo-pact-run",
		UserID:             DemoUserID,
		IdentityStatement:  "I am someone who moves every day.",
		Title:              "Run a 10K",
		Description:        "Build up from 3K to a full 10K run.",
		Category:           "fitness",
		Cadence:            "daily",
		StartDate:          day(now, -14),
		EndDate:            day(now, 42),
		Status:             models.PactActive,
		Streak:             12,
		VerificationMethod: "strava",
		Supporters: []models.Supporter{
			{ID: "demo-sup-1", Name: "Priya Shah", Email: "priya@pactly.app", Role: "accountability partner", Feedback: "Morning runs seem to stick better for you."},
		},
		MicroGoals: []models.MicroGoal{
			{ID: "demo-goal-1", GoalText: "Run 3K without stopping", Difficulty: models.DifficultyEasy, DueDate: day(now, -10), Completed: true, CompletedDate: day(now, -11)},
			{ID: "demo-goal-2", GoalText: "Run 5K under 35 minutes", Difficulty: models.DifficultyMedium, DueDate: day(now, 3), Completed: true, CompletedDate: day(now, -3)},
			{ID: "demo-goal-3", GoalText: "Run 7K", Difficulty: models.DifficultyMedium, DueDate: day(now, 14)},
			{ID: "demo-goal-4", GoalText: "Run 10K", Difficulty: models.DifficultyHard, DueDate: day(now, 42)},
		},
		Nudges: []models.Nudge{
			{ID: "demo-nudge-1", NudgeText: "Lay out your running shoes tonight.", BehavioralPrinciple: "implementation intentions"},
		},
		WeeklyPlan: []models.WeeklyPlanDay{
			{Day: "Monday", MicroGoal: "Easy 3K", Completed: true},
			{Day: "Wednesday", MicroGoal: "Intervals 4x400m"},
			{Day: "Saturday", MicroGoal: "Long run 6K"},
		},
		CheckIns: []models.DailyCheckIn{
			{ID: "demo-checkin-2", Date: day(now, -1), Mood: models.MoodGood, Note: "Felt strong on the hills.", CompletedGoals: []string{}, CreatedAt: now.AddDate(0, 0, -1)},
			{ID: "demo-checkin-1", Date: day(now, -3), Mood: models.MoodGreat, Note: "First sub-35 5K!", CompletedGoals: []string{"demo-goal-2"}, CreatedAt: now.AddDate(0, 0, -3)},
		},
		Verifications: []models.Verification{
			{ID: "demo-ver-1", Type: models.VerificationStrava, Status: models.VerificationVerified, Description: "5K activity", SubmittedAt: now.AddDate(0, 0, -3), VerifiedBy: "Priya Shah", VerifiedAt: &verifiedAt},
		},
		Reflections: []models.WeeklyReflection{
			{ID: "demo-refl-1", WeekNumber: 1, Wins: "Ran four times", Challenges: "Sore knees", Lessons: "Warm up longer", NextWeekFocus: "Consistency", Rating: 4, CreatedAt: now.AddDate(0, 0, -7)},
		},
		ProgressCards: []models.ProgressCard{},
		CreatedAt:     now.AddDate(0, 0, -14),
		UpdatedAt:     now.AddDate(0, 0, -1),
	}
	run.CompletionRate = models.CompletionRate(run.MicroGoals)

	read := models.Pact{
		ID:                 "demo-pact-read",
		UserID:             DemoUserID,
		IdentityStatement:  "I am a reader.",
		Title:              "Read 12 books this year",
		Description:        "One book a month, twenty pages a day.",
		Category:           "learning",
		Cadence:            "daily",
		StartDate:          day(now, -30),
		EndDate:            day(now, 335),
		Status:             models.PactActive,
		Streak:             5,
		VerificationMethod: "self_report",
		MicroGoals: []models.MicroGoal{
			{ID: "demo-goal-5", GoalText: "Finish book one", Difficulty: models.DifficultyEasy, DueDate: day(now, 0), Completed: true, CompletedDate: day(now, -2)},
			{ID: "demo-goal-6", GoalText: "Finish book two", Difficulty: models.DifficultyMedium, DueDate: day(now, 30)},
		},
		CreatedAt: now.AddDate(0, 0, -30),
		UpdatedAt: now.AddDate(0, 0, -2),
	}
	read.CompletionRate = models.CompletionRate(read.MicroGoals)

	pacts := []models.Pact{run, read}
	for i := range pacts {
		pacts[i].EnsureCollections()
	}
	return pacts
}

func demoRooms(now time.Time) []models.Room {
	rooms := []models.Room{
		{
			ID:          "demo-room-runners",
			Name:        "Morning Runners",
			Description: "Early miles, shared accountability.",
			Category:    "fitness",
			Icon:        "🏃",
			Members:     []string{"demo-supporter"},
			MemberCount: 128,
			Posts: []models.RoomPost{
				{ID: "demo-post-1", UserID: "demo-supporter", UserName: "Priya Shah", Content: "Who's up for a 6am 5K tomorrow?", Likes: 1, LikedBy: []string{"demo-supporter"}, CreatedAt: now.Add(-5 * time.Hour)},
			},
			Challenges: []models.RoomChallenge{
				{
					ID:                 "demo-challenge-100k",
					Title:              "100K in 30 days",
					Description:        "Log 100 kilometres before the month is out.",
					StartDate:          day(now, -5),
					EndDate:            day(now, 25),
					Status:             models.ChallengeActive,
					VerificationMethod: "strava",
					Prize:              "Finisher badge",
					Milestones: []models.ChallengeMilestone{
						{ID: "demo-ms-25", Title: "25K", Target: 25},
						{ID: "demo-ms-50", Title: "50K", Target: 50},
						{ID: "demo-ms-100", Title: "100K", Target: 100},
					},
					Participants: []models.ChallengeParticipant{
						{UserID: "demo-supporter", UserName: "Priya Shah", Progress: 32, CompletedMilestones: []string{"demo-ms-25"}, Verified: true, JoinedAt: now.AddDate(0, 0, -5)},
					},
				},
			},
			CreatedAt: now.AddDate(0, -6, 0),
		},
		{
			ID:          "demo-room-readers",
			Name:        "Page Turners",
			Description: "Reading streaks and recommendations.",
			Category:    "learning",
			Icon:        "📚",
			Members:     []string{},
			MemberCount: 64,
			Posts:       []models.RoomPost{},
			Challenges:  []models.RoomChallenge{},
			CreatedAt:   now.AddDate(0, -4, 0),
		},
		{
			ID:          "demo-room-mindful",
			Name:        "Mindful Minutes",
			Description: "Daily meditation check-ins.",
			Category:    "wellness",
			Icon:        "🧘",
			Members:     []string{},
			MemberCount: 41,
			Posts:       []models.RoomPost{},
			Challenges:  []models.RoomChallenge{},
			CreatedAt:   now.AddDate(0, -2, 0),
		},
	}
	return rooms
}

func demoActivity(now time.Time) []models.SupporterActivity {
	return []models.SupporterActivity{
		{ID: "demo-act-3", Type: models.ActivityEncouragement, SupporterName: "Priya Shah", PactTitle: "Run a 10K", Message: "Huge week, keep it going!", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "demo-act-2", Type: models.ActivityVerification, SupporterName: "Priya Shah", PactTitle: "Run a 10K", Message: "Verified your 5K run.", CreatedAt: now.AddDate(0, 0, -2)},
		{ID: "demo-act-1", Type: models.ActivityNudge, SupporterName: "Sam Lee", PactTitle: "Read 12 books this year", Message: "Twenty pages before bed?", CreatedAt: now.AddDate(0, 0, -4)},
	}
}
