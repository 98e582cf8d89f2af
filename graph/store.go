// graph exposes read-only access to the social graph: users, follow edges
// and posts. Ranking and search are written against the Store interface so
// the scoring logic stays unit-testable without a live database.
package graph

import (
	"strings"
	"time"

	"github.com/linkup-social/linkup/model"
)

// UserFilter narrows a user lookup. Zero-valued fields are ignored; provided
// fields combine with AND semantics. Interests matches when the user has at
// least one of the listed interests.
type UserFilter struct {
	Query      string
	Location   string
	Interests  []string
	IsVerified *bool
	ExcludeID  string
}

// Store is the read side of the social graph. All methods are pure reads.
// Lookups keyed by a viewer id fail with a NotFound error when the viewer
// does not exist; a user with no edges yields empty results, not an error.
type Store interface {
	// GetUser returns the user with the given id.
	GetUser(id string) (*model.User, error)

	// ListCandidates returns every user except the viewer and the users the
	// viewer already follows. Order is unspecified.
	ListCandidates(viewerID string) ([]*model.User, error)

	// GetFollowing returns the set of user ids the user follows.
	GetFollowing(userID string) (map[string]struct{}, error)

	// GetFollowers returns the set of user ids following the user.
	GetFollowers(userID string) (map[string]struct{}, error)

	// CountFollowers returns how many users follow the given user.
	CountFollowers(userID string) (int, error)

	// MutualFollowerCount counts users followed by the viewer that also
	// follow the candidate.
	MutualFollowerCount(viewerID, candidateID string) (int, error)

	// IsFollowing reports whether follower follows following.
	IsFollowing(followerID, followingID string) (bool, error)

	// FilterUsers returns all users matching the filter. Order is
	// unspecified; callers sort before paginating.
	FilterUsers(f UserFilter) ([]*model.User, error)

	// MatchPublicPosts returns public posts whose caption contains the query,
	// case-insensitively.
	MatchPublicPosts(query string) ([]*model.Post, error)

	// GetPostsByIDs returns the posts with the given ids, preserving the
	// input order and skipping missing ids.
	GetPostsByIDs(ids []string) ([]*model.Post, error)

	// ListPublicPostsSince returns public posts created at or after the given
	// time.
	ListPublicPostsSince(since time.Time) ([]*model.Post, error)
}

// CommonInterestCount returns the size of the interest intersection between
// two users. Comparison is case-insensitive.
func CommonInterestCount(a, b *model.User) int {
	if a == nil || b == nil {
		return 0
	}
	set := make(map[string]struct{}, len(a.Interests))
	for _, interest := range a.Interests {
		set[strings.ToLower(interest)] = struct{}{}
	}
	count := 0
	for _, interest := range b.Interests {
		if _, ok := set[strings.ToLower(interest)]; ok {
			count++
			delete(set, strings.ToLower(interest))
		}
	}
	return count
}

// SameLocation reports whether both users declare the same non-empty
// location, ignoring case and surrounding whitespace.
func SameLocation(a, b *model.User) bool {
	if a == nil || b == nil {
		return false
	}
	la := strings.ToLower(strings.TrimSpace(a.Location))
	lb := strings.ToLower(strings.TrimSpace(b.Location))
	return la != "" && la == lb
}

// MatchesQuery implements the user match predicate shared by global search
// and filtered user search: case-insensitive substring match on name,
// username or bio, or exact case-insensitive membership in interests.
func MatchesQuery(u *model.User, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Username), q) ||
		strings.Contains(strings.ToLower(u.Bio), q) {
		return true
	}
	for _, interest := range u.Interests {
		if strings.ToLower(interest) == q {
			return true
		}
	}
	return false
}
