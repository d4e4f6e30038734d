package pacts

import (
	"context"
	"fmt"

	"github.com/julianstephens/pactly/internal/cli"
	"github.com/julianstephens/pactly/internal/models"
)

type CheckInCmd struct {
	ID    string   `arg:"" help:"Pact id."`
	Mood  string   `help:"How the day went." enum:"great,good,okay,tough" default:"good"`
	Note  string   `help:"Short note for the day."`
	Goals []string `help:"Ids of micro-goals worked on today."`
}

func (c *CheckInCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, _, err := ctx.OwnedPact(bg, c.ID); err != nil {
		return err
	}

	p := ctx.Pacts.AddCheckIn(bg, c.ID, models.DailyCheckIn{
		Mood:           models.Mood(c.Mood),
		Note:           c.Note,
		CompletedGoals: c.Goals,
	})
	ctx.Printf("✓ Checked in on %s. Streak: %d\n", p.Title, p.Streak)
	return nil
}

type GoalToggleCmd struct {
	ID     string `arg:"" help:"Pact id."`
	GoalID string `arg:"" help:"Micro-goal id."`
}

func (c *GoalToggleCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	_, p, err := ctx.OwnedPact(bg, c.ID)
	if err != nil {
		return err
	}
	if !hasGoal(p, c.GoalID) {
		return fmt.Errorf("micro-goal not found: %s", c.GoalID)
	}

	p = ctx.Pacts.ToggleMicroGoal(bg, c.ID, c.GoalID)
	for _, g := range p.MicroGoals {
		if g.ID == c.GoalID {
			state := "open"
			if g.Completed {
				state = "done"
			}
			ctx.Printf("✓ %s marked %s. Completion: %d%%\n", g.GoalText, state, p.CompletionRate)
		}
	}
	return nil
}

func hasGoal(p *models.Pact, id string) bool {
	for _, g := range p.MicroGoals {
		if g.ID == id {
			return true
		}
	}
	return false
}

type DayToggleCmd struct {
	ID  string `arg:"" help:"Pact id."`
	Day int    `arg:"" help:"Index of the weekly plan day, starting at 0."`
}

func (c *DayToggleCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	_, p, err := ctx.OwnedPact(bg, c.ID)
	if err != nil {
		return err
	}
	if c.Day < 0 || c.Day >= len(p.WeeklyPlan) {
		return fmt.Errorf("day index %d is outside the weekly plan (0-%d)", c.Day, len(p.WeeklyPlan)-1)
	}

	p = ctx.Pacts.ToggleWeeklyDay(bg, c.ID, c.Day)
	d := p.WeeklyPlan[c.Day]
	ctx.Printf("✓ %s: %s completed=%v\n", d.Day, d.MicroGoal, d.Completed)
	return nil
}

type VerifyCmd struct {
	ID          string `arg:"" help:"Pact id."`
	Type        string `help:"Kind of evidence." enum:"photo,strava,supporter_confirm,self_report" default:"self_report"`
	Description string `help:"What the evidence shows." required:""`
	Evidence    string `help:"Link to the evidence."`
}

func (c *VerifyCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, _, err := ctx.OwnedPact(bg, c.ID); err != nil {
		return err
	}

	p := ctx.Pacts.AddVerification(bg, c.ID, models.Verification{
		Type:        models.VerificationType(c.Type),
		Description: c.Description,
		EvidenceURL: c.Evidence,
	})
	v := p.Verifications[len(p.Verifications)-1]
	ctx.Printf("✓ Verification %s submitted, waiting for a supporter\n", v.ID)
	return nil
}

// ConfirmCmd is run by a supporter vouching for a submitted verification.
type ConfirmCmd struct {
	ID             string `arg:"" help:"Pact id."`
	VerificationID string `arg:"" help:"Verification id."`
	By             string `help:"Name of the confirming supporter." required:""`
}

func (c *ConfirmCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	_, p, err := ctx.OwnedPact(bg, c.ID)
	if err != nil {
		return err
	}
	if !hasVerification(p, c.VerificationID) {
		return fmt.Errorf("verification not found: %s", c.VerificationID)
	}

	p = ctx.Pacts.ConfirmVerification(bg, c.ID, c.VerificationID, c.By)
	ctx.Feed.Append(bg, models.SupporterActivity{
		Type:          models.ActivityVerification,
		SupporterName: c.By,
		PactTitle:     p.Title,
		Message:       "Confirmed your progress",
	})
	ctx.Printf("✓ Verified by %s. %d verified so far\n", c.By, p.VerifiedCount())
	return nil
}

func hasVerification(p *models.Pact, id string) bool {
	for _, v := range p.Verifications {
		if v.ID == id {
			return true
		}
	}
	return false
}

// ReflectCmd records the weekly reflection. Only one reflection is kept per
// week of the pact.
type ReflectCmd struct {
	ID         string `arg:"" help:"Pact id."`
	Week       int    `help:"Week number. Defaults to the current week of the pact."`
	Wins       string `help:"What went well."`
	Challenges string `help:"What got in the way."`
	Lessons    string `help:"What you learned."`
	Focus      string `help:"Focus for next week."`
	Rating     int    `help:"How the week felt, 1 to 5." default:"3"`
}

func (c *ReflectCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	_, p, err := ctx.OwnedPact(bg, c.ID)
	if err != nil {
		return err
	}
	if c.Rating < 1 || c.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	week := c.Week
	if week <= 0 {
		week = p.WeekNumber(ctx.Now())
	}
	if p.HasReflectionForWeek(week) {
		return fmt.Errorf("a reflection for week %d already exists", week)
	}

	ctx.Pacts.AddWeeklyReflection(bg, c.ID, models.WeeklyReflection{
		WeekNumber:    week,
		Wins:          c.Wins,
		Challenges:    c.Challenges,
		Lessons:       c.Lessons,
		NextWeekFocus: c.Focus,
		Rating:        c.Rating,
	})
	ctx.Printf("✓ Reflection saved for week %d\n", week)
	return nil
}
