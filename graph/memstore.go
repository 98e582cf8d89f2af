package graph

import (
	"sort"
	"strings"
	"time"

	"github.com/linkup-social/linkup/apperr"
	"github.com/linkup-social/linkup/model"
)

// MemStore is an in-memory Store over fixed slices of users, edges and
// posts. Unit tests and local development use it in place of Postgres.
type MemStore struct {
	Users []*model.User
	Edges []*model.FollowEdge
	Posts []*model.Post
}

func NewMemStore(users []*model.User, edges []*model.FollowEdge, posts []*model.Post) *MemStore {
	return &MemStore{Users: users, Edges: edges, Posts: posts}
}

func (s *MemStore) GetUser(id string) (*model.User, error) {
	for _, user := range s.Users {
		if user.Id == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("user not found: " + id)
}

func (s *MemStore) ListCandidates(viewerID string) ([]*model.User, error) {
	if _, err := s.GetUser(viewerID); err != nil {
		return nil, err
	}
	following, err := s.GetFollowing(viewerID)
	if err != nil {
		return nil, err
	}
	var candidates []*model.User
	for _, user := range s.Users {
		if user.Id == viewerID {
			continue
		}
		if _, followed := following[user.Id]; followed {
			continue
		}
		candidates = append(candidates, user)
	}
	return candidates, nil
}

func (s *MemStore) GetFollowing(userID string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	for _, edge := range s.Edges {
		if edge.FollowerID == userID {
			set[edge.FollowingID] = struct{}{}
		}
	}
	return set, nil
}

func (s *MemStore) GetFollowers(userID string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	for _, edge := range s.Edges {
		if edge.FollowingID == userID {
			set[edge.FollowerID] = struct{}{}
		}
	}
	return set, nil
}

func (s *MemStore) CountFollowers(userID string) (int, error) {
	followers, err := s.GetFollowers(userID)
	if err != nil {
		return 0, err
	}
	return len(followers), nil
}

func (s *MemStore) MutualFollowerCount(viewerID, candidateID string) (int, error) {
	following, err := s.GetFollowing(viewerID)
	if err != nil {
		return 0, err
	}
	followers, err := s.GetFollowers(candidateID)
	if err != nil {
		return 0, err
	}
	count := 0
	for id := range following {
		if _, ok := followers[id]; ok {
			count++
		}
	}
	return count, nil
}

func (s *MemStore) IsFollowing(followerID, followingID string) (bool, error) {
	for _, edge := range s.Edges {
		if edge.FollowerID == followerID && edge.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) FilterUsers(f UserFilter) ([]*model.User, error) {
	var matched []*model.User
	for _, user := range s.Users {
		if f.ExcludeID != "" && user.Id == f.ExcludeID {
			continue
		}
		if f.Location != "" &&
			!strings.Contains(strings.ToLower(user.Location), strings.ToLower(f.Location)) {
			continue
		}
		if f.IsVerified != nil && user.IsVerified != *f.IsVerified {
			continue
		}
		if len(f.Interests) > 0 && !hasAnyInterest(user, f.Interests) {
			continue
		}
		if !MatchesQuery(user, f.Query) {
			continue
		}
		matched = append(matched, user)
	}
	return matched, nil
}

func (s *MemStore) MatchPublicPosts(query string) ([]*model.Post, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	var matched []*model.Post
	for _, post := range s.Posts {
		if !post.IsPublic {
			continue
		}
		if strings.Contains(strings.ToLower(post.Caption), q) {
			matched = append(matched, post)
		}
	}
	return matched, nil
}

func (s *MemStore) GetPostsByIDs(ids []string) ([]*model.Post, error) {
	byID := make(map[string]*model.Post, len(s.Posts))
	for _, post := range s.Posts {
		byID[post.Id] = post
	}
	var ordered []*model.Post
	for _, id := range ids {
		if post, ok := byID[id]; ok {
			ordered = append(ordered, post)
		}
	}
	return ordered, nil
}

func (s *MemStore) ListPublicPostsSince(since time.Time) ([]*model.Post, error) {
	var matched []*model.Post
	for _, post := range s.Posts {
		if post.IsPublic && !post.CreatedAt.Before(since) {
			matched = append(matched, post)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func hasAnyInterest(user *model.User, wanted []string) bool {
	for _, want := range wanted {
		w := strings.ToLower(strings.TrimSpace(want))
		for _, have := range user.Interests {
			if strings.ToLower(have) == w {
				return true
			}
		}
	}
	return false
}
