package pacts

import (
	"context"
	"fmt"

	"github.com/julianstephens/pactly/internal/cli"
)

type CardGenerateCmd struct {
	ID string `arg:"" help:"Pact id."`
}

func (c *CardGenerateCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, _, err := ctx.OwnedPact(bg, c.ID); err != nil {
		return err
	}
	card := ctx.Pacts.GenerateProgressCard(bg, c.ID)
	ctx.Println(cli.RenderProgressCard(*card))
	return nil
}

type CardListCmd struct {
	ID string `arg:"" help:"Pact id."`
}

func (c *CardListCmd) Run(ctx *cli.Context) error {
	_, p, err := ctx.OwnedPact(context.Background(), c.ID)
	if err != nil {
		return err
	}
	if len(p.ProgressCards) == 0 {
		ctx.Println("No progress cards yet.")
		return nil
	}
	for _, card := range p.ProgressCards {
		ctx.Println(cli.RenderProgressCard(card))
	}
	return nil
}

// CardShareCmd marks a card as shared. Shared cards stay shared.
type CardShareCmd struct {
	ID     string `arg:"" help:"Pact id."`
	CardID string `arg:"" help:"Progress card id."`
}

func (c *CardShareCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	_, p, err := ctx.OwnedPact(bg, c.ID)
	if err != nil {
		return err
	}

	found := false
	for _, card := range p.ProgressCards {
		if card.ID == c.CardID {
			found = true
			if card.Shared {
				ctx.Println("Card is already shared.")
				return nil
			}
		}
	}
	if !found {
		return fmt.Errorf("progress card not found: %s", c.CardID)
	}

	ctx.Pacts.ShareProgressCard(bg, c.ID, c.CardID)
	ctx.Println("✓ Card shared")
	return nil
}
