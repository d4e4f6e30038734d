package pacts

import (
	"context"

	"github.com/julianstephens/pactly/internal/cli"
	"github.com/julianstephens/pactly/internal/models"
)

type SupporterAddCmd struct {
	ID       string `arg:"" help:"Pact id."`
	Name     string `arg:"" help:"Supporter name."`
	Email    string `help:"Supporter email."`
	Role     string `help:"Relationship, e.g. friend or coach."`
	Feedback string `help:"Feedback the supporter has given. Sent to the planning agent."`
}

func (c *SupporterAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, _, err := ctx.OwnedPact(bg, c.ID); err != nil {
		return err
	}
	p := ctx.Pacts.AddSupporter(bg, c.ID, models.Supporter{
		Name:     c.Name,
		Email:    c.Email,
		Role:     c.Role,
		Feedback: c.Feedback,
	})
	ctx.Printf("✓ %s now supports %s (%d supporters)\n", c.Name, p.Title, len(p.Supporters))
	return nil
}
