package pacts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/pactly/internal/cli"
	"github.com/julianstephens/pactly/internal/models"
	"github.com/julianstephens/pactly/internal/validation"
)

type ListCmd struct {
	Status string `help:"Only show pacts with this status." enum:",active,completed,paused,abandoned" default:""`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}

	shown := 0
	for _, p := range ctx.Pacts.ListPacts(bg, user.ID) {
		if c.Status != "" && string(p.Status) != c.Status {
			continue
		}
		ctx.Println(cli.RenderPactSummary(p))
		shown++
	}
	if shown == 0 {
		ctx.Println("No pacts yet. Create one with 'pactly pact create'.")
	}
	return nil
}

type CreateCmd struct {
	Title        string `arg:"" help:"What you are committing to."`
	Identity     string `help:"Identity statement, e.g. 'I am someone who runs'." required:""`
	Description  string `help:"Longer description."`
	Category     string `help:"Category label." default:"general"`
	Cadence      string `help:"How often you check in." default:"daily"`
	Start        string `help:"Start date (YYYY-MM-DD). Defaults to today."`
	End          string `help:"End date (YYYY-MM-DD)."`
	Verification string `help:"How progress is verified." default:"self_report"`
}

func (c *CreateCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}

	start := c.Start
	if start == "" {
		start = ctx.Now().Format("2006-01-02")
	}
	input := validation.PactInput{
		Title:             c.Title,
		IdentityStatement: c.Identity,
		StartDate:         start,
		EndDate:           c.End,
		Status:            string(models.PactActive),
	}
	if err := ctx.Validate.Struct(input); err != nil {
		return errors.New(validation.FirstMessage(err))
	}

	p := ctx.Pacts.CreatePact(bg, models.Pact{
		ID:                 uuid.NewString(),
		UserID:             user.ID,
		Title:              c.Title,
		IdentityStatement:  c.Identity,
		Description:        c.Description,
		Category:           c.Category,
		Cadence:            c.Cadence,
		StartDate:          start,
		EndDate:            c.End,
		Status:             models.PactActive,
		VerificationMethod: c.Verification,
	})
	ctx.PerformAutomaticBackup(bg)

	ctx.Printf("✓ Created pact %s (%s)\n", p.Title, p.ID)
	return nil
}

type ShowCmd struct {
	ID string `arg:"" help:"Pact id."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	_, p, err := ctx.OwnedPact(context.Background(), c.ID)
	if err != nil {
		return err
	}
	ctx.Printf("%s", cli.RenderPactDetail(*p))
	return nil
}

type StatusCmd struct {
	ID     string `arg:"" help:"Pact id."`
	Status string `arg:"" help:"New status." enum:"active,completed,paused,abandoned"`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, _, err := ctx.OwnedPact(bg, c.ID); err != nil {
		return err
	}
	status := models.PactStatus(c.Status)
	if !models.ValidStatus(status) {
		return fmt.Errorf("unknown status %q", c.Status)
	}
	p := ctx.Pacts.SetStatus(bg, c.ID, status)
	ctx.Printf("✓ %s is now %s\n", p.Title, p.Status)
	return nil
}

type DeleteCmd struct {
	ID  string `arg:"" help:"Pact id."`
	Yes bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	_, p, err := ctx.OwnedPact(bg, c.ID)
	if err != nil {
		return err
	}
	if !c.Yes && !ctx.Confirm(fmt.Sprintf("Delete pact %q and all of its history?", p.Title)) {
		ctx.Println("Delete cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup(bg)
	ctx.Pacts.DeletePact(bg, c.ID)
	ctx.Printf("✓ Deleted pact %s\n", p.Title)
	return nil
}
