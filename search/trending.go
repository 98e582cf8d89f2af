package search

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/linkup-social/linkup/apperr"
	"github.com/linkup-social/linkup/graph"
	"github.com/linkup-social/linkup/utils"
	. "github.com/linkup-social/linkup/utils/log"
)

const (
	// DefaultTrendingWindow is the trailing window trending looks at.
	DefaultTrendingWindow = 7 * 24 * time.Hour

	maxTrendingLimit = 100
	trendingCacheTTL = 5 * time.Minute
)

// TrendingTag is one entry of the trending ranking.
type TrendingTag struct {
	Hashtag string `json:"hashtag"`
	Count   int    `json:"count"`
}

// TrendingHashtags counts hashtag occurrences across public posts created
// within the trailing window and returns the top-limit tags, count
// descending, ties by tag ascending.
//
// Counting is per occurrence: a caption repeating a tag twice contributes 2
// to that tag, not 1. This weights chatty posts higher than a
// distinct-posts count would.
func TrendingHashtags(store graph.Store, window time.Duration, limit int) ([]TrendingTag, error) {
	if limit < 1 {
		return nil, apperr.InvalidArgument("limit must be >= 1")
	}
	if limit > maxTrendingLimit {
		limit = maxTrendingLimit
	}
	if window <= 0 {
		window = DefaultTrendingWindow
	}

	posts, err := store.ListPublicPostsSince(time.Now().Add(-window))
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, post := range posts {
		for _, tag := range ExtractHashtags(post.Caption) {
			counts[NormalizeTag(tag)]++
		}
	}

	ranked := make([]TrendingTag, 0, len(counts))
	for tag, count := range counts {
		ranked = append(ranked, TrendingTag{Hashtag: tag, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Hashtag < ranked[j].Hashtag
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Trender serves trending rankings with a short-lived Redis cache in front
// of the aggregation. Cache may be nil, then every call recomputes.
type Trender struct {
	Store  graph.Store
	Cache  *utils.RedisClient
	Window time.Duration
}

func NewTrender(store graph.Store, cache *utils.RedisClient) *Trender {
	return &Trender{Store: store, Cache: cache, Window: DefaultTrendingWindow}
}

// Trending returns the top-limit trending hashtags, serving from cache when
// a fresh entry exists. Cache failures only log, they never fail the
// request.
func (t *Trender) Trending(limit int) ([]TrendingTag, error) {
	key := fmt.Sprintf("trending_%dh_%d", int(t.Window.Hours()), limit)

	if t.Cache != nil {
		if payload, ok := t.Cache.GetTrendingPayload(key); ok {
			var cached []TrendingTag
			if err := json.Unmarshal([]byte(payload), &cached); err == nil {
				return cached, nil
			}
			Log.Warn("corrupt trending cache entry, recomputing, key=", key)
		}
	}

	ranked, err := TrendingHashtags(t.Store, t.Window, limit)
	if err != nil {
		return nil, err
	}

	if t.Cache != nil {
		payload, marshalErr := json.Marshal(ranked)
		if marshalErr == nil {
			if cacheErr := t.Cache.CacheTrendingPayload(key, string(payload), trendingCacheTTL); cacheErr != nil {
				Log.Warn("fail to cache trending ranking: ", cacheErr)
			}
		}
	}
	return ranked, nil
}
