package models

import (
	"math"
	"time"
)

type PactStatus string

const (
	PactActive    PactStatus = "active"
	PactCompleted PactStatus = "completed"
	PactPaused    PactStatus = "paused"
	PactAbandoned PactStatus = "abandoned"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Mood string

const (
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOkay  Mood = "okay"
	MoodTough Mood = "tough"
)

type VerificationType string

const (
	VerificationPhoto            VerificationType = "photo"
	VerificationStrava           VerificationType = "strava"
	VerificationSupporterConfirm VerificationType = "supporter_confirm"
	VerificationSelfReport       VerificationType = "self_report"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	// VerificationDisputed has no producing transition yet.
	VerificationDisputed VerificationStatus = "disputed"
)

// Pact is the root aggregate. Child collections are owned exclusively by
// the pact and are never shared between pacts.
type Pact struct {
	ID                  string             `json:"id"`
	UserID              string             `json:"userId"`
	IdentityStatement   string             `json:"identityStatement"`
	Title               string             `json:"title"`
	Description         string             `json:"description"`
	Category            string             `json:"category"`
	Cadence             string             `json:"cadence"`
	StartDate           string             `json:"startDate"` // YYYY-MM-DD
	EndDate             string             `json:"endDate"`   // YYYY-MM-DD
	Status              PactStatus         `json:"status"`
	Streak              int                `json:"streak"`
	CompletionRate      int                `json:"completionRate"`
	VerificationMethod  string             `json:"verificationMethod"`
	BehavioralState     string             `json:"behavioralState,omitempty"`
	IdentityAffirmation string             `json:"identityAffirmation,omitempty"`
	Supporters          []Supporter        `json:"supporters"`
	MicroGoals          []MicroGoal        `json:"microGoals"`
	Nudges              []Nudge            `json:"nudges"`
	WeeklyPlan          []WeeklyPlanDay    `json:"weeklyPlan"`
	CheckIns            []DailyCheckIn     `json:"checkIns"`
	Verifications       []Verification     `json:"verifications"`
	Reflections         []WeeklyReflection `json:"reflections"`
	ProgressCards       []ProgressCard     `json:"progressCards"`
	CreatedAt           time.Time          `json:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt"`
}

type Supporter struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	Feedback string `json:"feedback,omitempty"`
}

type MicroGoal struct {
	ID                string     `json:"id"`
	GoalText          string     `json:"goalText"`
	Difficulty        Difficulty `json:"difficulty"`
	DueDate           string     `json:"dueDate,omitempty"`
	Completed         bool       `json:"completed"`
	CompletedDate     string     `json:"completedDate,omitempty"`
	Reasoning         string     `json:"reasoning,omitempty"`
	MeasurableOutcome string     `json:"measurableOutcome,omitempty"`
}

type Nudge struct {
	ID                  string `json:"id"`
	NudgeText           string `json:"nudgeText"`
	BehavioralPrinciple string `json:"behavioralPrinciple,omitempty"`
}

type WeeklyPlanDay struct {
	Day             string `json:"day"`
	MicroGoal       string `json:"microGoal"`
	Reminder        string `json:"reminder,omitempty"`
	SupporterPrompt string `json:"supporterPrompt,omitempty"`
	Completed       bool   `json:"completed"`
}

type DailyCheckIn struct {
	ID             string    `json:"id"`
	Date           string    `json:"date"`
	Mood           Mood      `json:"mood"`
	Note           string    `json:"note"`
	CompletedGoals []string  `json:"completedGoals"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Verification struct {
	ID          string             `json:"id"`
	Type        VerificationType   `json:"type"`
	Status      VerificationStatus `json:"status"`
	Description string             `json:"description"`
	EvidenceURL string             `json:"evidenceUrl,omitempty"`
	SubmittedAt time.Time          `json:"submittedAt"`
	VerifiedBy  string             `json:"verifiedBy,omitempty"`
	VerifiedAt  *time.Time         `json:"verifiedAt,omitempty"`
}

type WeeklyReflection struct {
	ID            string    `json:"id"`
	WeekNumber    int       `json:"weekNumber"`
	Wins          string    `json:"wins"`
	Challenges    string    `json:"challenges"`
	Lessons       string    `json:"lessons"`
	NextWeekFocus string    `json:"nextWeekFocus"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ProgressStats is frozen at generation time.
type ProgressStats struct {
	StreakDays     int `json:"streakDays"`
	GoalsCompleted int `json:"goalsCompleted"`
	TotalGoals     int `json:"totalGoals"`
	CompletionRate int `json:"completionRate"`
	VerifiedCount  int `json:"verifiedCount"`
}

type ProgressCard struct {
	ID                string        `json:"id"`
	PactID            string        `json:"pactId"`
	Title             string        `json:"title"`
	IdentityStatement string        `json:"identityStatement"`
	Stats             ProgressStats `json:"stats"`
	Shared            bool          `json:"shared"`
	CreatedAt         time.Time     `json:"createdAt"`
}

// CompletionRate returns round(100*completed/total), or 0 for no goals.
func CompletionRate(goals []MicroGoal) int {
	if len(goals) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(CompletedGoals(goals)) / float64(len(goals))))
}

// CompletedGoals counts completed micro-goals.
func CompletedGoals(goals []MicroGoal) int {
	n := 0
	for _, g := range goals {
		if g.Completed {
			n++
		}
	}
	return n
}

// VerifiedCount counts verifications that reached the verified state.
func (p *Pact) VerifiedCount() int {
	n := 0
	for _, v := range p.Verifications {
		if v.Status == VerificationVerified {
			n++
		}
	}
	return n
}

// WeekNumber is max(1, ceil((now - start) / 7 days)). An unparsable start
// date yields week 1.
func (p *Pact) WeekNumber(now time.Time) int {
	start, err := time.ParseInLocation("2006-01-02", p.StartDate, now.Location())
	if err != nil {
		return 1
	}
	week := int(math.Ceil(now.Sub(start).Hours() / (24 * 7)))
	if week < 1 {
		return 1
	}
	return week
}

// HasReflectionForWeek reports whether a reflection for the given week exists.
func (p *Pact) HasReflectionForWeek(week int) bool {
	for _, r := range p.Reflections {
		if r.WeekNumber == week {
			return true
		}
	}
	return false
}

// EnsureCollections replaces nil child slices with empty ones so the
// persisted JSON always carries arrays.
func (p *Pact) EnsureCollections() {
	if p.Supporters == nil {
		p.Supporters = []Supporter{}
	}
	if p.MicroGoals == nil {
		p.MicroGoals = []MicroGoal{}
	}
	if p.Nudges == nil {
		p.Nudges = []Nudge{}
	}
	if p.WeeklyPlan == nil {
		p.WeeklyPlan = []WeeklyPlanDay{}
	}
	if p.CheckIns == nil {
		p.CheckIns = []DailyCheckIn{}
	}
	if p.Verifications == nil {
		p.Verifications = []Verification{}
	}
	if p.Reflections == nil {
		p.Reflections = []WeeklyReflection{}
	}
	if p.ProgressCards == nil {
		p.ProgressCards = []ProgressCard{}
	}
}

// ValidStatus reports whether s is a declared pact status.
func ValidStatus(s PactStatus) bool {
	switch s {
	case PactActive, PactCompleted, PactPaused, PactAbandoned:
		return true
	}
	return false
}
