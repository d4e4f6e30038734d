package rooms

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/pactly/internal/cli"
	"github.com/julianstephens/pactly/internal/models"
	"github.com/julianstephens/pactly/internal/utils"
)

type ChallengeAddCmd struct {
	ID           string   `arg:"" help:"Room id."`
	Title        string   `arg:"" help:"Challenge title."`
	Description  string   `help:"Challenge description."`
	Start        string   `help:"Start date (YYYY-MM-DD)." required:""`
	End          string   `help:"End date (YYYY-MM-DD)." required:""`
	Status       string   `help:"Challenge status." enum:"upcoming,active,completed" default:"upcoming"`
	Verification string   `help:"How progress is verified." default:"self_report"`
	Prize        string   `help:"Optional prize."`
	Milestones   []string `help:"Milestones as title:target pairs, e.g. 'Week one:25'."`
}

func (c *ChallengeAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, _, err := member(ctx, bg, c.ID); err != nil {
		return err
	}
	start, err := utils.ParseDate(c.Start)
	if err != nil {
		return err
	}
	end, err := utils.ParseDate(c.End)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s", c.End, c.Start)
	}

	milestones, err := parseMilestones(c.Milestones)
	if err != nil {
		return err
	}

	r := ctx.Rooms.AddChallenge(bg, c.ID, models.RoomChallenge{
		Title:              c.Title,
		Description:        c.Description,
		StartDate:          c.Start,
		EndDate:            c.End,
		Status:             models.ChallengeStatus(c.Status),
		VerificationMethod: c.Verification,
		Prize:              c.Prize,
		Milestones:         milestones,
	})
	added := r.Challenges[len(r.Challenges)-1]
	ctx.Printf("✓ Added challenge %s (%s)\n", added.Title, added.ID)
	return nil
}

func parseMilestones(specs []string) ([]models.ChallengeMilestone, error) {
	out := make([]models.ChallengeMilestone, 0, len(specs))
	for _, s := range specs {
		idx := strings.LastIndex(s, ":")
		if idx <= 0 {
			return nil, fmt.Errorf("milestone %q must look like title:target", s)
		}
		target, err := strconv.Atoi(strings.TrimSpace(s[idx+1:]))
		if err != nil {
			return nil, fmt.Errorf("milestone %q has a non-numeric target", s)
		}
		out = append(out, models.ChallengeMilestone{ID: uuid.NewString(), Title: strings.TrimSpace(s[:idx]), Target: target})
	}
	return out, nil
}

type ChallengeJoinCmd struct {
	ID          string `arg:"" help:"Room id."`
	ChallengeID string `arg:"" help:"Challenge id."`
}

func (c *ChallengeJoinCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, r, err := member(ctx, bg, c.ID)
	if err != nil {
		return err
	}
	if findChallenge(r, c.ChallengeID) == nil {
		return fmt.Errorf("challenge not found: %s", c.ChallengeID)
	}
	ctx.Rooms.JoinChallenge(bg, c.ID, c.ChallengeID, user.ID, user.Name)
	ctx.Println("✓ Joined challenge")
	return nil
}

// ChallengeProgressCmd records progress as a percentage. The range check
// lives here; the room service stores whatever it is given.
type ChallengeProgressCmd struct {
	ID          string `arg:"" help:"Room id."`
	ChallengeID string `arg:"" help:"Challenge id."`
	Progress    int    `arg:"" help:"Progress from 0 to 100."`
	Milestone   string `help:"Also mark this milestone id as reached."`
}

func (c *ChallengeProgressCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, r, err := member(ctx, bg, c.ID)
	if err != nil {
		return err
	}
	if c.Progress < 0 || c.Progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	ch := findChallenge(r, c.ChallengeID)
	if ch == nil {
		return fmt.Errorf("challenge not found: %s", c.ChallengeID)
	}
	if ch.Participant(user.ID) < 0 {
		return fmt.Errorf("join the challenge first")
	}

	ctx.Rooms.UpdateChallengeProgress(bg, c.ID, c.ChallengeID, user.ID, c.Progress)
	if c.Milestone != "" {
		ctx.Rooms.CompleteMilestone(bg, c.ID, c.ChallengeID, user.ID, c.Milestone)
	}
	ctx.Printf("✓ Progress %d%%\n", c.Progress)
	return nil
}

func findChallenge(r *models.Room, id string) *models.RoomChallenge {
	for i := range r.Challenges {
		if r.Challenges[i].ID == id {
			return &r.Challenges[i]
		}
	}
	return nil
}
