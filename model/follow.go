package model

import "time"

// FollowEdge is a directed follow relation, unique per (follower, following)
// pair. Self-loops are rejected by the issuing system and not re-validated
// here.
type FollowEdge struct {
	FollowerID  string `gorm:"primaryKey"`
	FollowingID string `gorm:"primaryKey;index"`
	CreatedAt   time.Time
}
