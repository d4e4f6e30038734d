package feed

import (
	"context"
	"fmt"

	"github.com/julianstephens/pactly/internal/cli"
	"github.com/julianstephens/pactly/internal/models"
)

type ListCmd struct {
	Limit int    `help:"Maximum number of entries." default:"20"`
	Pact  string `help:"Only entries about the pact with this title."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	var entries []models.SupporterActivity
	if c.Pact != "" {
		entries = ctx.Feed.ForPact(bg, c.Pact)
		if c.Limit > 0 && len(entries) > c.Limit {
			entries = entries[:c.Limit]
		}
	} else {
		entries = ctx.Feed.List(bg, c.Limit)
	}

	if len(entries) == 0 {
		ctx.Println("No supporter activity yet.")
		return nil
	}
	for _, a := range entries {
		ctx.Printf("%s  %-13s %s on %q: %s\n", a.CreatedAt.Format("2006-01-02 15:04"), a.Type, a.SupporterName, a.PactTitle, a.Message)
	}
	return nil
}

// AddCmd records something a supporter did for one of your pacts.
type AddCmd struct {
	PactID  string `arg:"" help:"Pact id."`
	Message string `arg:"" help:"What the supporter said or did."`
	From    string `help:"Supporter name." required:""`
	Type    string `help:"Kind of activity." enum:"encouragement,verification,nudge" default:"encouragement"`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	_, p, err := ctx.OwnedPact(bg, c.PactID)
	if err != nil {
		return err
	}
	if c.From == "" {
		return fmt.Errorf("supporter name cannot be empty")
	}

	ctx.Feed.Append(bg, models.SupporterActivity{
		Type:          models.ActivityType(c.Type),
		SupporterName: c.From,
		PactTitle:     p.Title,
		Message:       c.Message,
	})
	ctx.Printf("✓ Added %s from %s\n", c.Type, c.From)
	return nil
}
