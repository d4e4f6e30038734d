package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/pactly/internal/cli"
	"github.com/julianstephens/pactly/internal/session"
)

type LoginCmd struct {
	Email    string `arg:"" help:"Account email. A new account is created if none exists."`
	Password string `help:"Account password." env:"PACTLY_PASSWORD" required:""`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	res := ctx.Sessions.Login(context.Background(), c.Email, c.Password)
	return report(ctx, res, "Signed in as")
}

type RegisterCmd struct {
	Name     string `arg:"" help:"Display name."`
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Account password." env:"PACTLY_PASSWORD" required:""`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	res := ctx.Sessions.Register(context.Background(), c.Name, c.Email, c.Password)
	return report(ctx, res, "Registered")
}

func report(ctx *cli.Context, res session.Result, verb string) error {
	if !res.Success {
		return errors.New(res.Error)
	}
	ctx.Printf("✓ %s %s <%s>\n", verb, res.User.Name, res.User.Email)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	ctx.Sessions.Logout(context.Background())
	ctx.Println("✓ Signed out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser(context.Background())
	if err != nil {
		return err
	}
	ctx.Printf("%s <%s>\n", user.Name, user.Email)
	ctx.Printf("  id:          %s\n", user.ID)
	ctx.Printf("  joined:      %s\n", user.JoinedAt.Format("2006-01-02"))
	ctx.Printf("  tier:        %s (trust %d)\n", user.Tier, user.TrustScore)
	ctx.Printf("  streak:      %d (longest %d)\n", user.CurrentStreak, user.LongestStreak)
	ctx.Printf("  pacts:       %d (%d completed)\n", user.TotalPacts, user.CompletedPacts)
	if user.Bio != "" {
		ctx.Printf("  bio:         %s\n", user.Bio)
	}
	return nil
}

// ProfileCmd edits the display fields of the signed-in user.
type ProfileCmd struct {
	Name   *string `help:"New display name."`
	Bio    *string `help:"New bio."`
	Avatar *string `help:"New avatar URL."`
}

func (c *ProfileCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}

	updated := *user
	if c.Name != nil {
		if *c.Name == "" {
			return fmt.Errorf("name cannot be empty")
		}
		updated.Name = *c.Name
	}
	if c.Bio != nil {
		updated.Bio = *c.Bio
	}
	if c.Avatar != nil {
		updated.Avatar = *c.Avatar
	}

	if ctx.Sessions.UpdateProfile(bg, updated) == nil {
		return cli.ErrNotSignedIn
	}
	ctx.Println("✓ Profile updated")
	return nil
}
