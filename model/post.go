package model

import (
	"time"

	"gorm.io/gorm"
)

/*

Post is a piece of user generated content.

Id: primary key
CreatedAt: time when entity is created, bounds the trending window
DeletedAt: time when entity is soft-deleted

PostedByID:
PostedBy: author of the post, "belongs-to" relation
Caption: post text, the only field search and trending look at
IsPublic: only public posts are visible to search and trending

*/
type Post struct {
	Id         string `gorm:"primaryKey"`
	CreatedAt  time.Time
	DeletedAt  gorm.DeletedAt
	PostedByID string `gorm:"index"`
	PostedBy   *User  `gorm:"foreignKey:PostedByID"`
	Caption    string
	IsPublic   bool
}
