package graph

import (
	"strings"
	"time"

	"github.com/linkup-social/linkup/apperr"
	"github.com/linkup-social/linkup/model"
	"gorm.io/gorm"
)

// GormStore implements Store on top of the shared Postgres database. It
// issues only reads; concurrency control is the database's business.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) GetUser(id string) (*model.User, error) {
	var user model.User
	result := s.DB.Where("id = ?", id).First(&user)
	if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
		return nil, apperr.Internal(result.Error, "fail to load user")
	}
	if result.RowsAffected != 1 {
		return nil, apperr.NotFound("user not found: " + id)
	}
	return &user, nil
}

func (s *GormStore) ListCandidates(viewerID string) ([]*model.User, error) {
	if _, err := s.GetUser(viewerID); err != nil {
		return nil, err
	}
	var users []*model.User
	result := s.DB.
		Where("id <> ?", viewerID).
		Where("id NOT IN (?)",
			s.DB.Model(&model.FollowEdge{}).Select("following_id").Where("follower_id = ?", viewerID)).
		Find(&users)
	if result.Error != nil {
		return nil, apperr.Internal(result.Error, "fail to list candidates")
	}
	return users, nil
}

func (s *GormStore) GetFollowing(userID string) (map[string]struct{}, error) {
	var ids []string
	result := s.DB.Model(&model.FollowEdge{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids)
	if result.Error != nil {
		return nil, apperr.Internal(result.Error, "fail to load following set")
	}
	return toSet(ids), nil
}

func (s *GormStore) GetFollowers(userID string) (map[string]struct{}, error) {
	var ids []string
	result := s.DB.Model(&model.FollowEdge{}).
		Where("following_id = ?", userID).
		Pluck("follower_id", &ids)
	if result.Error != nil {
		return nil, apperr.Internal(result.Error, "fail to load follower set")
	}
	return toSet(ids), nil
}

func (s *GormStore) CountFollowers(userID string) (int, error) {
	var count int64
	result := s.DB.Model(&model.FollowEdge{}).
		Where("following_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return 0, apperr.Internal(result.Error, "fail to count followers")
	}
	return int(count), nil
}

func (s *GormStore) MutualFollowerCount(viewerID, candidateID string) (int, error) {
	var count int64
	result := s.DB.Model(&model.FollowEdge{}).
		Joins("JOIN follow_edges viewer_edges ON viewer_edges.following_id = follow_edges.follower_id").
		Where("viewer_edges.follower_id = ? AND follow_edges.following_id = ?", viewerID, candidateID).
		Count(&count)
	if result.Error != nil {
		return 0, apperr.Internal(result.Error, "fail to count mutual followers")
	}
	return int(count), nil
}

func (s *GormStore) IsFollowing(followerID, followingID string) (bool, error) {
	var count int64
	result := s.DB.Model(&model.FollowEdge{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count)
	if result.Error != nil {
		return false, apperr.Internal(result.Error, "fail to check follow edge")
	}
	return count > 0, nil
}

func (s *GormStore) FilterUsers(f UserFilter) ([]*model.User, error) {
	query := s.DB.Model(&model.User{})
	if f.ExcludeID != "" {
		query = query.Where("id <> ?", f.ExcludeID)
	}
	if f.Location != "" {
		query = query.Where("location ILIKE ?", "%"+f.Location+"%")
	}
	if f.IsVerified != nil {
		query = query.Where("is_verified = ?", *f.IsVerified)
	}
	if len(f.Interests) > 0 {
		lowered := make([]string, 0, len(f.Interests))
		for _, interest := range f.Interests {
			lowered = append(lowered, strings.ToLower(strings.TrimSpace(interest)))
		}
		query = query.Where("EXISTS (SELECT 1 FROM unnest(interests) AS i WHERE lower(i) IN ?)", lowered)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + q + "%"
		query = query.Where(
			"name ILIKE ? OR username ILIKE ? OR bio ILIKE ? OR EXISTS (SELECT 1 FROM unnest(interests) AS i WHERE lower(i) = lower(?))",
			pattern, pattern, pattern, q)
	}
	var users []*model.User
	result := query.Find(&users)
	if result.Error != nil {
		return nil, apperr.Internal(result.Error, "fail to filter users")
	}
	return users, nil
}

func (s *GormStore) MatchPublicPosts(query string) ([]*model.Post, error) {
	var posts []*model.Post
	result := s.DB.Preload("PostedBy").
		Where("is_public = ? AND caption ILIKE ?", true, "%"+strings.TrimSpace(query)+"%").
		Find(&posts)
	if result.Error != nil {
		return nil, apperr.Internal(result.Error, "fail to search posts")
	}
	return posts, nil
}

func (s *GormStore) GetPostsByIDs(ids []string) ([]*model.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []*model.Post
	result := s.DB.Preload("PostedBy").Where("id IN ?", ids).Find(&posts)
	if result.Error != nil {
		return nil, apperr.Internal(result.Error, "fail to load posts by id")
	}
	byID := make(map[string]*model.Post, len(posts))
	for _, post := range posts {
		byID[post.Id] = post
	}
	ordered := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if post, ok := byID[id]; ok {
			ordered = append(ordered, post)
		}
	}
	return ordered, nil
}

func (s *GormStore) ListPublicPostsSince(since time.Time) ([]*model.Post, error) {
	var posts []*model.Post
	result := s.DB.
		Where("is_public = ? AND created_at >= ?", true, since).
		Find(&posts)
	if result.Error != nil {
		return nil, apperr.Internal(result.Error, "fail to list recent posts")
	}
	return posts, nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
