package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

/*

User is an account in the social graph. The account system owns this table,
the search/recommendation core only reads it.

Id: primary key
CreatedAt: time when the account is created, feeds the seniority bonus
DeletedAt: time when the account is soft-deleted

Name: display name
Username: unique handle, used for login and mentions
Bio: free-form profile text
Location: free-form location string, compared case-insensitively
Interests: list of interest labels picked by the user
IsVerified: set by the moderation system

*/
type User struct {
	Id         string `gorm:"primaryKey"`
	CreatedAt  time.Time
	DeletedAt  gorm.DeletedAt
	Name       string
	Username   string `gorm:"uniqueIndex"`
	Bio        string
	Location   string
	Interests  pq.StringArray `gorm:"type:text[]"`
	IsVerified bool
}
