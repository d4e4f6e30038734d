package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/julianstephens/pactly/internal/models"
	"github.com/julianstephens/pactly/internal/storage"
	"github.com/julianstephens/pactly/internal/storage/memory"
)

var testNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func newTestService() *Service {
	svc := NewService(storage.NewStore(memory.New()).Rooms())
	svc.SetClock(func() time.Time { return testNow })
	return svc
}

func seedRoom(svc *Service, members ...string) models.Room {
	return svc.CreateRoom(context.Background(), models.Room{
		ID:       "r1",
		Name:     "Morning Runners",
		Category: "fitness",
		Members:  members,
	})
}

func TestCreateRoomDefaults(t *testing.T) {
	svc := newTestService()
	r := seedRoom(svc, "a", "b")

	assert.Equal(t, 2, r.MemberCount)
	assert.Equal(t, testNow, r.CreatedAt)
	assert.NotNil(t, r.Posts)
	assert.NotNil(t, r.Challenges)

	assert.Len(t, svc.ListRooms(context.Background()), 1)
	assert.Nil(t, svc.GetRoom(context.Background(), "nope"))
}

func TestJoinRoomIsIdempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	seedRoom(svc)

	r := svc.JoinRoom(ctx, "r1", "u1")
	assert.Equal(t, []string{"u1"}, r.Members)
	assert.Equal(t, 1, r.MemberCount)

	r = svc.JoinRoom(ctx, "r1", "u1")
	assert.Equal(t, []string{"u1"}, r.Members)
	assert.Equal(t, 1, r.MemberCount)

	assert.Nil(t, svc.JoinRoom(ctx, "missing", "u1"))
}

func TestMemberCountIsLifetime(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	seedRoom(svc)

	svc.JoinRoom(ctx, "r1", "u1")
	svc.JoinRoom(ctx, "r1", "u2")
	r := svc.LeaveRoom(ctx, "r1", "u1")
	assert.Equal(t, []string{"u2"}, r.Members)
	assert.Equal(t, 2, r.MemberCount)

	r = svc.LeaveRoom(ctx, "r1", "u1")
	assert.Equal(t, []string{"u2"}, r.Members)

	r = svc.JoinRoom(ctx, "r1", "u1")
	assert.Equal(t, 3, r.MemberCount)
}

func TestJoinRoomCatchesUpWithMembers(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	svc.CreateRoom(ctx, models.Room{ID: "r1"})

	// a counter that fell behind the list catches up on the next join
	rooms := svc.rooms.Load(ctx)
	rooms[0].Members = []string{"a", "b", "c"}
	rooms[0].MemberCount = 0
	svc.rooms.Save(ctx, rooms)

	r := svc.JoinRoom(ctx, "r1", "d")
	assert.Equal(t, 4, r.MemberCount)
}

func TestRepeatedJoinsKeepOneOccurrence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		svc := newTestService()
		ctx := context.Background()
		seedRoom(svc)

		users := []string{"u1", "u2", "u3"}
		ops := rapid.SliceOfN(rapid.SampledFrom(users), 1, 40).Draw(rt, "joins")
		for _, u := range ops {
			svc.JoinRoom(ctx, "r1", u)
			svc.JoinRoom(ctx, "r1", u)
		}

		r := svc.GetRoom(ctx, "r1")
		seen := map[string]int{}
		for _, m := range r.Members {
			seen[m]++
		}
		for u, n := range seen {
			if n != 1 {
				rt.Fatalf("%s appears %d times", u, n)
			}
		}
		if r.MemberCount < len(r.Members) {
			rt.Fatalf("memberCount %d below members %d", r.MemberCount, len(r.Members))
		}
	})
}

func TestPostsPrependAndLikeToggle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	seedRoom(svc, "u1")

	svc.AddPost(ctx, "r1", models.RoomPost{ID: "p1", UserID: "u1", Content: "first", Likes: 9, LikedBy: []string{"x"}})
	r := svc.AddPost(ctx, "r1", models.RoomPost{ID: "p2", UserID: "u1", Content: "second"})
	require.Len(t, r.Posts, 2)
	assert.Equal(t, "p2", r.Posts[0].ID)
	assert.Equal(t, 0, r.Posts[1].Likes)
	assert.Empty(t, r.Posts[1].LikedBy)

	r = svc.LikePost(ctx, "r1", "p1", "u2")
	assert.Equal(t, 1, r.Posts[1].Likes)
	assert.Equal(t, []string{"u2"}, r.Posts[1].LikedBy)

	r = svc.LikePost(ctx, "r1", "p1", "u2")
	assert.Equal(t, 0, r.Posts[1].Likes)
	assert.Empty(t, r.Posts[1].LikedBy)

	r = svc.LikePost(ctx, "r1", "nope", "u2")
	assert.Equal(t, 0, r.Posts[1].Likes)
}

func TestLikesAlwaysMatchLikedBy(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		svc := newTestService()
		ctx := context.Background()
		seedRoom(svc)
		svc.AddPost(ctx, "r1", models.RoomPost{ID: "p1", UserID: "author"})

		users := []string{"a", "b", "c", "d"}
		toggles := map[string]int{}
		for _, u := range rapid.SliceOf(rapid.SampledFrom(users)).Draw(rt, "likes") {
			svc.LikePost(ctx, "r1", "p1", u)
			toggles[u]++
		}

		post := svc.GetRoom(ctx, "r1").Posts[0]
		if post.Likes != len(post.LikedBy) {
			rt.Fatalf("likes %d, likedBy %v", post.Likes, post.LikedBy)
		}
		for _, u := range users {
			liked := false
			for _, l := range post.LikedBy {
				liked = liked || l == u
			}
			if liked != (toggles[u]%2 == 1) {
				rt.Fatalf("%s toggled %d times, liked=%v", u, toggles[u], liked)
			}
		}
	})
}

func TestChallengeParticipation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	seedRoom(svc, "u1")

	r := svc.AddChallenge(ctx, "r1", models.RoomChallenge{
		ID:    "c1",
		Title: "30 day streak",
		Milestones: []models.ChallengeMilestone{
			{ID: "m1", Title: "Week one", Target: 7},
			{ID: "m2", Title: "Week two", Target: 14},
		},
	})
	require.Len(t, r.Challenges, 1)
	assert.Equal(t, models.ChallengeUpcoming, r.Challenges[0].Status)

	svc.JoinChallenge(ctx, "r1", "c1", "u1", "Uma")
	r = svc.JoinChallenge(ctx, "r1", "c1", "u1", "Uma again")
	require.Len(t, r.Challenges[0].Participants, 1)
	p := r.Challenges[0].Participants[0]
	assert.Equal(t, "Uma", p.UserName)
	assert.Equal(t, 0, p.Progress)
	assert.Empty(t, p.CompletedMilestones)
	assert.NotNil(t, p.CompletedMilestones)
	assert.False(t, p.Verified)
	assert.Equal(t, testNow, p.JoinedAt)

	r = svc.UpdateChallengeProgress(ctx, "r1", "c1", "u1", 140)
	assert.Equal(t, 140, r.Challenges[0].Participants[0].Progress)
	r = svc.UpdateChallengeProgress(ctx, "r1", "c1", "u1", -5)
	assert.Equal(t, -5, r.Challenges[0].Participants[0].Progress)

	svc.CompleteMilestone(ctx, "r1", "c1", "u1", "m1")
	svc.CompleteMilestone(ctx, "r1", "c1", "u1", "m1")
	r = svc.CompleteMilestone(ctx, "r1", "c1", "u1", "m9")
	assert.Equal(t, []string{"m1"}, r.Challenges[0].Participants[0].CompletedMilestones)

	r = svc.UpdateChallengeProgress(ctx, "r1", "c1", "stranger", 50)
	assert.Len(t, r.Challenges[0].Participants, 1)
	r = svc.JoinChallenge(ctx, "r1", "c-missing", "u1", "Uma")
	assert.Len(t, r.Challenges, 1)
}

func TestRoomsForUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	svc.CreateRoom(ctx, models.Room{ID: "r1", Members: []string{"u1"}})
	svc.CreateRoom(ctx, models.Room{ID: "r2", Members: []string{"u2"}})
	svc.CreateRoom(ctx, models.Room{ID: "r3", Members: []string{"u1", "u2"}})

	var ids []string
	for _, r := range svc.RoomsForUser(ctx, "u1") {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"r1", "r3"}, ids)
	assert.Empty(t, svc.RoomsForUser(ctx, "u9"))
}
