package rooms

import (
	"context"
	"fmt"

	"github.com/julianstephens/pactly/internal/cli"
	"github.com/julianstephens/pactly/internal/models"
)

type ListCmd struct {
	Mine bool `help:"Only rooms you belong to."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	var rooms []models.Room
	if c.Mine {
		user, err := ctx.RequireUser(bg)
		if err != nil {
			return err
		}
		rooms = ctx.Rooms.RoomsForUser(bg, user.ID)
	} else {
		rooms = ctx.Rooms.ListRooms(bg)
	}

	if len(rooms) == 0 {
		ctx.Println("No rooms found.")
		return nil
	}
	for _, r := range rooms {
		ctx.Printf("%-24s %-28s %-10s %d members, %d challenges\n", r.ID, r.Name, r.Category, r.MemberCount, len(r.Challenges))
	}
	return nil
}

type ShowCmd struct {
	ID    string `arg:"" help:"Room id."`
	Posts int    `help:"Number of posts to show." default:"10"`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	r, err := ctx.RequireRoom(context.Background(), c.ID)
	if err != nil {
		return err
	}

	ctx.Printf("%s %s\n%s\n", r.Icon, r.Name, r.Description)
	ctx.Printf("Members: %d (%d here now)\n", r.MemberCount, len(r.Members))

	for _, ch := range r.Challenges {
		ctx.Printf("\nChallenge %s: %s [%s] %s to %s\n", ch.ID, ch.Title, ch.Status, ch.StartDate, ch.EndDate)
		for _, p := range ch.Participants {
			ctx.Printf("  %-16s progress %3d  milestones %d\n", p.UserName, p.Progress, len(p.CompletedMilestones))
		}
	}

	if len(r.Posts) > 0 {
		ctx.Println("\nPosts:")
		for _, p := range r.Posts[:min(c.Posts, len(r.Posts))] {
			ctx.Printf("  %s: %s  (♥ %d)  %s\n", p.UserName, p.Content, p.Likes, p.ID)
		}
	}
	return nil
}

type CreateCmd struct {
	Name        string `arg:"" help:"Room name."`
	Description string `help:"What the room is about."`
	Category    string `help:"Category label." default:"general"`
	Icon        string `help:"Emoji or short icon text."`
}

func (c *CreateCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}
	if c.Name == "" {
		return fmt.Errorf("room name cannot be empty")
	}

	r := ctx.Rooms.CreateRoom(bg, models.Room{
		Name:        c.Name,
		Description: c.Description,
		Category:    c.Category,
		Icon:        c.Icon,
	})
	ctx.Rooms.JoinRoom(bg, r.ID, user.ID)
	ctx.Printf("✓ Created room %s (%s)\n", r.Name, r.ID)
	return nil
}

type JoinCmd struct {
	ID string `arg:"" help:"Room id."`
}

func (c *JoinCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}
	if _, err := ctx.RequireRoom(bg, c.ID); err != nil {
		return err
	}
	r := ctx.Rooms.JoinRoom(bg, c.ID, user.ID)
	ctx.Printf("✓ Joined %s\n", r.Name)
	return nil
}

type LeaveCmd struct {
	ID string `arg:"" help:"Room id."`
}

func (c *LeaveCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}
	if _, err := ctx.RequireRoom(bg, c.ID); err != nil {
		return err
	}
	r := ctx.Rooms.LeaveRoom(bg, c.ID, user.ID)
	ctx.Printf("✓ Left %s\n", r.Name)
	return nil
}

type PostCmd struct {
	ID      string `arg:"" help:"Room id."`
	Content string `arg:"" help:"Post text."`
}

func (c *PostCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, r, err := member(ctx, bg, c.ID)
	if err != nil {
		return err
	}
	if c.Content == "" {
		return fmt.Errorf("post cannot be empty")
	}
	ctx.Rooms.AddPost(bg, r.ID, models.RoomPost{
		UserID:   user.ID,
		UserName: user.Name,
		Content:  c.Content,
	})
	ctx.Printf("✓ Posted to %s\n", r.Name)
	return nil
}

type LikeCmd struct {
	ID     string `arg:"" help:"Room id."`
	PostID string `arg:"" help:"Post id."`
}

// Run toggles: liking a post twice takes the like back.
func (c *LikeCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}
	if _, err := ctx.RequireRoom(bg, c.ID); err != nil {
		return err
	}

	r := ctx.Rooms.LikePost(bg, c.ID, c.PostID, user.ID)
	for _, p := range r.Posts {
		if p.ID == c.PostID {
			ctx.Printf("♥ %d\n", p.Likes)
			return nil
		}
	}
	return fmt.Errorf("post not found: %s", c.PostID)
}

func member(ctx *cli.Context, bg context.Context, roomID string) (*models.User, *models.Room, error) {
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return nil, nil, err
	}
	r, err := ctx.RequireRoom(bg, roomID)
	if err != nil {
		return nil, nil, err
	}
	if !r.IsMember(user.ID) {
		return nil, nil, fmt.Errorf("join %s before posting or taking part", r.Name)
	}
	return user, r, nil
}
