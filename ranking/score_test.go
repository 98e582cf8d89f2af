package ranking

import (
	"testing"
	"time"

	"github.com/linkup-social/linkup/apperr"
	"github.com/linkup-social/linkup/graph"
	"github.com/linkup-social/linkup/model"
	"github.com/stretchr/testify/require"
)

func newUser(id string, opts ...func(*model.User)) *model.User {
	user := &model.User{
		Id:        id,
		Username:  id,
		Name:      id,
		CreatedAt: time.Now().Add(-24 * time.Hour),
	}
	for _, opt := range opts {
		opt(user)
	}
	return user
}

func follow(follower, following string) *model.FollowEdge {
	return &model.FollowEdge{FollowerID: follower, FollowingID: following}
}

func TestRecommendExcludesViewerAndFollowed(t *testing.T) {
	store := graph.NewMemStore(
		[]*model.User{newUser("viewer"), newUser("followed"), newUser("stranger")},
		[]*model.FollowEdge{follow("viewer", "followed")},
		nil,
	)

	page, err := Recommend(store, "viewer", PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	require.Equal(t, "stranger", page.Users[0].User.Id)
}

func TestRecommendDeterministic(t *testing.T) {
	users := []*model.User{newUser("viewer")}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		users = append(users, newUser(id))
	}
	edges := []*model.FollowEdge{
		follow("viewer", "a"),
		follow("a", "b"),
		follow("a", "c"),
		follow("x", "b"),
	}
	store := graph.NewMemStore(users, edges, nil)

	first, err := Recommend(store, "viewer", PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	second, err := Recommend(store, "viewer", PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)

	require.Equal(t, len(first.Users), len(second.Users))
	for i := range first.Users {
		require.Equal(t, first.Users[i].User.Id, second.Users[i].User.Id)
		require.InDelta(t, first.Users[i].Score, second.Users[i].Score, 1e-6)
	}
}

func TestRecommendMutualFollowerWeight(t *testing.T) {
	// viewer follows b; b follows c and d. d has a mutual follower via b,
	// e has no graph relation at all, so d must outrank e.
	users := []*model.User{
		newUser("viewer"), newUser("b"), newUser("c"), newUser("d"), newUser("e"),
	}
	edges := []*model.FollowEdge{
		follow("viewer", "b"),
		follow("b", "c"),
		follow("b", "d"),
	}
	store := graph.NewMemStore(users, edges, nil)

	page, err := Recommend(store, "viewer", PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)

	byID := make(map[string]*Recommendation)
	for _, rec := range page.Users {
		byID[rec.User.Id] = rec
	}
	require.NotContains(t, byID, "b")
	require.Equal(t, 10.0, byID["d"].Breakdown.MutualFollowers)
	require.Equal(t, 0.0, byID["e"].Breakdown.MutualFollowers)
	require.Greater(t, byID["d"].Score, byID["e"].Score)
}

func TestScoreMonotonicInMutualFollowers(t *testing.T) {
	// Adding one mutual follower raises the score by exactly the mutual
	// weight once the follower-count bonus is held fixed.
	createdAt := time.Now().Add(-48 * time.Hour)
	mkStore := func(mutuals int) graph.Store {
		users := []*model.User{
			newUser("viewer"),
			newUser("candidate", func(u *model.User) { u.CreatedAt = createdAt }),
		}
		edges := []*model.FollowEdge{}
		for i := 0; i < mutuals; i++ {
			bridge := newUser(string(rune('m'+i)) + "-bridge")
			users = append(users, bridge)
			edges = append(edges,
				follow("viewer", bridge.Id),
				follow(bridge.Id, "candidate"),
			)
		}
		return graph.NewMemStore(users, edges, nil)
	}

	score := func(store graph.Store) *Recommendation {
		page, err := Recommend(store, "viewer", PageRequest{Page: 1, Limit: 100})
		require.NoError(t, err)
		for _, rec := range page.Users {
			if rec.User.Id == "candidate" {
				return rec
			}
		}
		t.Fatal("candidate missing from recommendations")
		return nil
	}

	one := score(mkStore(1))
	two := score(mkStore(2))
	require.InDelta(t, 10.0, two.Breakdown.MutualFollowers-one.Breakdown.MutualFollowers, 1e-9)

	// The two rankings run at slightly different wall times, so allow the
	// account-age bonus a little slack.
	followerBonusDelta := two.Breakdown.FollowerBonus - one.Breakdown.FollowerBonus
	require.InDelta(t, 10.0+followerBonusDelta, two.Score-one.Score, 1e-3)
}

func TestRecommendSignalBreakdown(t *testing.T) {
	verified := newUser("candidate", func(u *model.User) {
		u.IsVerified = true
		u.Location = "Lisbon"
		u.Interests = []string{"go", "jazz", "food"}
		u.CreatedAt = time.Time{}
	})
	viewer := newUser("viewer", func(u *model.User) {
		u.Location = " lisbon "
		u.Interests = []string{"GO", "Jazz"}
	})
	store := graph.NewMemStore([]*model.User{viewer, verified}, nil, nil)

	page, err := Recommend(store, "viewer", PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Users, 1)

	breakdown := page.Users[0].Breakdown
	require.Equal(t, 10.0, breakdown.CommonInterests)
	require.Equal(t, 5.0, breakdown.SameLocation)
	require.Equal(t, 3.0, breakdown.Verified)
	require.Equal(t, 0.0, breakdown.AccountAge)
	require.Equal(t, 0.0, breakdown.FollowerBonus)
	require.InDelta(t, 18.0, page.Users[0].Score, 1e-9)
}

func TestRecommendPaginationConsistency(t *testing.T) {
	users := []*model.User{newUser("viewer")}
	for i := 0; i < 25; i++ {
		users = append(users, newUser("candidate-"+string(rune('a'+i))))
	}
	store := graph.NewMemStore(users, nil, nil)

	full, err := Recommend(store, "viewer", PageRequest{Page: 1, Limit: 100})
	require.NoError(t, err)
	require.Equal(t, 25, full.Pagination.TotalCount)

	var stitched []string
	for pageNum := 1; pageNum <= 3; pageNum++ {
		page, err := Recommend(store, "viewer", PageRequest{Page: pageNum, Limit: 10})
		require.NoError(t, err)
		require.Equal(t, pageNum, page.Pagination.CurrentPage)
		require.Equal(t, 3, page.Pagination.TotalPages)
		for _, rec := range page.Users {
			stitched = append(stitched, rec.User.Id)
		}
	}

	require.Len(t, stitched, 25)
	seen := make(map[string]bool)
	for i, id := range stitched {
		require.False(t, seen[id], "duplicate across pages")
		seen[id] = true
		require.Equal(t, full.Users[i].User.Id, id)
	}
}

func TestRecommendPageBeyondEnd(t *testing.T) {
	store := graph.NewMemStore(
		[]*model.User{newUser("viewer"), newUser("only")}, nil, nil)

	page, err := Recommend(store, "viewer", PageRequest{Page: 5, Limit: 10})
	require.NoError(t, err)
	require.Empty(t, page.Users)
	require.False(t, page.Pagination.HasMore)
	require.Equal(t, 1, page.Pagination.TotalCount)
}

func TestRecommendNoCandidates(t *testing.T) {
	store := graph.NewMemStore(
		[]*model.User{newUser("viewer"), newUser("followed")},
		[]*model.FollowEdge{follow("viewer", "followed")},
		nil,
	)

	page, err := Recommend(store, "viewer", PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Empty(t, page.Users)
	require.Equal(t, 0, page.Pagination.TotalCount)
	require.Equal(t, 0, page.Pagination.TotalPages)
}

func TestRecommendInvalidInput(t *testing.T) {
	store := graph.NewMemStore([]*model.User{newUser("viewer")}, nil, nil)

	_, err := Recommend(store, "viewer", PageRequest{Page: 0, Limit: 10})
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = Recommend(store, "viewer", PageRequest{Page: 1, Limit: -1})
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = Recommend(store, "ghost", PageRequest{Page: 1, Limit: 10})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// The store offers no snapshot isolation between candidate listing and
// scoring. A follow edge appearing mid-request may still leave the candidate
// in the results; this documents that looser behavior rather than asserting
// strict consistency.
func TestRecommendToleratesMidRequestFollow(t *testing.T) {
	store := graph.NewMemStore(
		[]*model.User{newUser("viewer"), newUser("candidate")}, nil, nil)

	candidates, err := store.ListCandidates("viewer")
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	// The follow lands after the candidate set was read.
	store.Edges = append(store.Edges, follow("viewer", "candidate"))

	page, err := Recommend(store, "viewer", PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	// The fresh computation excludes the candidate; the earlier candidate
	// read is allowed to have included it.
	require.Empty(t, page.Users)
}
