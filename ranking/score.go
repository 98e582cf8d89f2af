// ranking computes the "people you may know" recommendation scores over the
// social graph.
package ranking

import (
	"math"
	"sort"
	"time"

	"github.com/linkup-social/linkup/graph"
	"github.com/linkup-social/linkup/model"
)

// Signal weights of the recommendation score. Fixed so a given graph
// snapshot always produces the same ranking.
const (
	weightMutualFollowers = 10.0
	weightCommonInterests = 5.0
	weightSameLocation    = 5.0
	weightVerified        = 3.0
)

// Breakdown retains each signal's contribution to a candidate's score, so a
// ranking can be explained and asserted on signal by signal.
type Breakdown struct {
	MutualFollowers float64 `json:"mutualFollowers"`
	CommonInterests float64 `json:"commonInterests"`
	SameLocation    float64 `json:"sameLocation"`
	FollowerBonus   float64 `json:"followerBonus"`
	AccountAge      float64 `json:"accountAge"`
	Verified        float64 `json:"verified"`
}

// Recommendation is one scored candidate. Transient, never persisted.
type Recommendation struct {
	User          *model.User `json:"user"`
	Score         float64     `json:"score"`
	Breakdown     Breakdown   `json:"breakdown"`
	FollowerCount int         `json:"followerCount"`
}

// RecommendationPage is one page of the fully ranked candidate list.
type RecommendationPage struct {
	Users      []*Recommendation `json:"users"`
	Pagination Pagination        `json:"pagination"`
}

// Recommend scores every user the viewer does not already follow and returns
// the requested page of the ranking.
//
// score(c) = 10*mutualFollowers + 5*commonInterests + 5*sameLocation
//          + sqrt(followerCount) + ageInDays + 3*verified
//
// Ties break by follower count descending, then creation time descending,
// then id ascending, so the full ordering is total and pages are stable
// across calls on the same snapshot.
func Recommend(store graph.Store, viewerID string, page PageRequest) (*RecommendationPage, error) {
	page, err := page.Sanitize()
	if err != nil {
		return nil, err
	}
	viewer, err := store.GetUser(viewerID)
	if err != nil {
		return nil, err
	}
	candidates, err := store.ListCandidates(viewerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	scored := make([]*Recommendation, 0, len(candidates))
	for _, candidate := range candidates {
		rec, err := scoreCandidate(store, viewer, candidate, now)
		if err != nil {
			// A partially scored list would break ranking determinism, so the
			// whole request fails instead.
			return nil, err
		}
		scored = append(scored, rec)
	}

	sort.Slice(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.FollowerCount != b.FollowerCount {
			return a.FollowerCount > b.FollowerCount
		}
		if !a.User.CreatedAt.Equal(b.User.CreatedAt) {
			return a.User.CreatedAt.After(b.User.CreatedAt)
		}
		return a.User.Id < b.User.Id
	})

	start, end, pagination := Slice(len(scored), page)
	return &RecommendationPage{
		Users:      scored[start:end],
		Pagination: pagination,
	}, nil
}

func scoreCandidate(store graph.Store, viewer, candidate *model.User, now time.Time) (*Recommendation, error) {
	mutual, err := store.MutualFollowerCount(viewer.Id, candidate.Id)
	if err != nil {
		return nil, err
	}
	followers, err := store.CountFollowers(candidate.Id)
	if err != nil {
		return nil, err
	}

	breakdown := Breakdown{
		MutualFollowers: weightMutualFollowers * float64(mutual),
		CommonInterests: weightCommonInterests * float64(graph.CommonInterestCount(viewer, candidate)),
		FollowerBonus:   math.Sqrt(float64(followers)),
		AccountAge:      ageInDays(candidate.CreatedAt, now),
	}
	if graph.SameLocation(viewer, candidate) {
		breakdown.SameLocation = weightSameLocation
	}
	if candidate.IsVerified {
		breakdown.Verified = weightVerified
	}

	return &Recommendation{
		User:          candidate,
		Score:         breakdown.total(),
		Breakdown:     breakdown,
		FollowerCount: followers,
	}, nil
}

func (b Breakdown) total() float64 {
	return b.MutualFollowers + b.CommonInterests + b.SameLocation +
		b.FollowerBonus + b.AccountAge + b.Verified
}

// ageInDays is the account age in fractional days at evaluation time. A
// zero-valued creation time is treated as now and contributes nothing.
func ageInDays(createdAt time.Time, now time.Time) float64 {
	if createdAt.IsZero() || createdAt.After(now) {
		return 0
	}
	return now.Sub(createdAt).Hours() / 24
}
