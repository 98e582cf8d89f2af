package search

import (
	"testing"
	"time"

	"github.com/linkup-social/linkup/apperr"
	"github.com/linkup-social/linkup/graph"
	"github.com/linkup-social/linkup/model"
	"github.com/stretchr/testify/require"
)

func publicPost(id, caption string, age time.Duration) *model.Post {
	return &model.Post{
		Id:        id,
		Caption:   caption,
		IsPublic:  true,
		CreatedAt: time.Now().Add(-age),
	}
}

// Counting is per occurrence: the first post's doubled #go contributes 2.
func TestTrendingCountsOccurrences(t *testing.T) {
	store := graph.NewMemStore(nil, nil, []*model.Post{
		publicPost("p1", "#go #go #rust", time.Hour),
		publicPost("p2", "#go", time.Hour),
	})

	ranked, err := TrendingHashtags(store, DefaultTrendingWindow, 2)
	require.NoError(t, err)
	require.Equal(t, []TrendingTag{
		{Hashtag: "go", Count: 3},
		{Hashtag: "rust", Count: 1},
	}, ranked)
}

func TestTrendingNormalizesCase(t *testing.T) {
	store := graph.NewMemStore(nil, nil, []*model.Post{
		publicPost("p1", "#GoLang", time.Hour),
		publicPost("p2", "#golang", time.Hour),
	})

	ranked, err := TrendingHashtags(store, DefaultTrendingWindow, 10)
	require.NoError(t, err)
	require.Equal(t, []TrendingTag{{Hashtag: "golang", Count: 2}}, ranked)
}

func TestTrendingWindowExcludesOldAndPrivatePosts(t *testing.T) {
	store := graph.NewMemStore(nil, nil, []*model.Post{
		publicPost("fresh", "#fresh", time.Hour),
		publicPost("stale", "#stale", 8*24*time.Hour),
		{Id: "private", Caption: "#hidden", IsPublic: false, CreatedAt: time.Now()},
	})

	ranked, err := TrendingHashtags(store, DefaultTrendingWindow, 10)
	require.NoError(t, err)
	require.Equal(t, []TrendingTag{{Hashtag: "fresh", Count: 1}}, ranked)
}

func TestTrendingTieBreaksByTag(t *testing.T) {
	store := graph.NewMemStore(nil, nil, []*model.Post{
		publicPost("p1", "#zebra #apple", time.Hour),
	})

	ranked, err := TrendingHashtags(store, DefaultTrendingWindow, 10)
	require.NoError(t, err)
	require.Equal(t, []TrendingTag{
		{Hashtag: "apple", Count: 1},
		{Hashtag: "zebra", Count: 1},
	}, ranked)
}

func TestTrendingLimit(t *testing.T) {
	store := graph.NewMemStore(nil, nil, []*model.Post{
		publicPost("p1", "#a #a #b #b #c", time.Hour),
	})

	ranked, err := TrendingHashtags(store, DefaultTrendingWindow, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	_, err = TrendingHashtags(store, DefaultTrendingWindow, 0)
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestTrenderWithoutCache(t *testing.T) {
	store := graph.NewMemStore(nil, nil, []*model.Post{
		publicPost("p1", "#go", time.Hour),
	})
	trender := NewTrender(store, nil)

	ranked, err := trender.Trending(5)
	require.NoError(t, err)
	require.Equal(t, []TrendingTag{{Hashtag: "go", Count: 1}}, ranked)
}
