package search

import (
	"sort"
	"strings"

	"github.com/linkup-social/linkup/apperr"
	"github.com/linkup-social/linkup/graph"
	"github.com/linkup-social/linkup/model"
	"github.com/linkup-social/linkup/ranking"
)

// Search types accepted by GlobalSearch.
const (
	TypeAll      = "all"
	TypeUsers    = "users"
	TypePosts    = "posts"
	TypeHashtags = "hashtags"
)

// Engine executes keyword search over users and public posts. It is
// independent of the recommendation scorer; both share the graph.Store.
type Engine struct {
	store   graph.Store
	indexer *Indexer
}

// NewEngine builds an Engine. indexer may be nil, in which case every lookup
// scans the store directly.
func NewEngine(store graph.Store, indexer *Indexer) *Engine {
	return &Engine{store: store, indexer: indexer}
}

// UserPage is one page of matched users.
type UserPage struct {
	Items      []*model.User      `json:"items"`
	Pagination ranking.Pagination `json:"pagination"`
}

// PostPage is one page of matched public posts.
type PostPage struct {
	Items      []*model.Post      `json:"items"`
	Pagination ranking.Pagination `json:"pagination"`
}

// GlobalResult is the response of a global search. Only the sections the
// requested type asked for are populated.
type GlobalResult struct {
	Users    *UserPage `json:"users,omitempty"`
	Posts    *PostPage `json:"posts,omitempty"`
	Hashtags []string  `json:"hashtags,omitempty"`
}

// GlobalSearch looks up the query across users and public posts. searchType
// is one of all, users, posts or hashtags; "all" returns independent user
// and post result sets, each paginated on its own.
func (e *Engine) GlobalSearch(query, searchType string, page ranking.PageRequest) (*GlobalResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.InvalidArgument("query must not be empty")
	}
	page, err := page.Sanitize()
	if err != nil {
		return nil, err
	}
	if searchType == "" {
		searchType = TypeAll
	}

	result := &GlobalResult{}
	switch searchType {
	case TypeAll:
		if result.Users, err = e.searchUsers(query, page); err != nil {
			return nil, err
		}
		if result.Posts, err = e.searchPosts(query, page); err != nil {
			return nil, err
		}
	case TypeUsers:
		if result.Users, err = e.searchUsers(query, page); err != nil {
			return nil, err
		}
	case TypePosts:
		if result.Posts, err = e.searchPosts(query, page); err != nil {
			return nil, err
		}
	case TypeHashtags:
		result.Hashtags = uniqueNormalizedTags(ExtractHashtags(query))
	default:
		return nil, apperr.InvalidArgument("unknown search type: " + searchType)
	}
	return result, nil
}

func (e *Engine) searchUsers(query string, page ranking.PageRequest) (*UserPage, error) {
	users, err := e.store.FilterUsers(graph.UserFilter{Query: query})
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Username != users[j].Username {
			return users[i].Username < users[j].Username
		}
		return users[i].Id < users[j].Id
	})
	start, end, pagination := ranking.Slice(len(users), page)
	return &UserPage{Items: users[start:end], Pagination: pagination}, nil
}

func (e *Engine) searchPosts(query string, page ranking.PageRequest) (*PostPage, error) {
	posts, err := e.matchPosts(query)
	if err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].Id < posts[j].Id
	})
	start, end, pagination := ranking.Slice(len(posts), page)
	return &PostPage{Items: posts[start:end], Pagination: pagination}, nil
}

// matchPosts prefers the full-text index when one is mounted and falls back
// to a direct caption scan.
func (e *Engine) matchPosts(query string) ([]*model.Post, error) {
	if e.indexer != nil && e.indexer.Ready() {
		ids, err := e.indexer.QueryContentIDs(ContentTypePost, query)
		if err == nil && len(ids) > 0 {
			posts, err := e.store.GetPostsByIDs(ids)
			if err != nil {
				return nil, err
			}
			public := posts[:0]
			for _, post := range posts {
				if post.IsPublic {
					public = append(public, post)
				}
			}
			return public, nil
		}
		// Index miss or failure falls through to the direct scan.
	}
	return e.store.MatchPublicPosts(query)
}

// UserWithFollowState is a filtered-search hit annotated for the viewer.
type UserWithFollowState struct {
	*model.User
	FollowerCount int  `json:"followerCount"`
	IsFollowing   bool `json:"isFollowing"`
}

// FilteredUserPage is one page of a filtered user search.
type FilteredUserPage struct {
	Users      []*UserWithFollowState `json:"users"`
	Pagination ranking.Pagination     `json:"pagination"`
}

// SearchUsers runs the filtered user search: optional free-text query plus
// optional location / interests / verified filters, AND-combined. The viewer
// is always excluded. An empty query with no filters is allowed and matches
// everyone else. Results sort by follower count descending, then name
// ascending.
func (e *Engine) SearchUsers(viewerID string, filter graph.UserFilter, page ranking.PageRequest) (*FilteredUserPage, error) {
	page, err := page.Sanitize()
	if err != nil {
		return nil, err
	}
	if _, err := e.store.GetUser(viewerID); err != nil {
		return nil, err
	}
	filter.ExcludeID = viewerID

	users, err := e.store.FilterUsers(filter)
	if err != nil {
		return nil, err
	}

	annotated := make([]*UserWithFollowState, 0, len(users))
	for _, user := range users {
		followers, err := e.store.CountFollowers(user.Id)
		if err != nil {
			return nil, err
		}
		isFollowing, err := e.store.IsFollowing(viewerID, user.Id)
		if err != nil {
			return nil, err
		}
		annotated = append(annotated, &UserWithFollowState{
			User:          user,
			FollowerCount: followers,
			IsFollowing:   isFollowing,
		})
	}

	sort.Slice(annotated, func(i, j int) bool {
		a, b := annotated[i], annotated[j]
		if a.FollowerCount != b.FollowerCount {
			return a.FollowerCount > b.FollowerCount
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Id < b.Id
	})

	start, end, pagination := ranking.Slice(len(annotated), page)
	return &FilteredUserPage{Users: annotated[start:end], Pagination: pagination}, nil
}

func uniqueNormalizedTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, tag := range tags {
		normalized := NormalizeTag(tag)
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
