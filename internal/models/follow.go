// Package models contains data structures for the application's domain models.
package models

import "time"

// Follow is a directed edge meaning the follower receives the author's
// posts in their personalized feed. The composite unique index makes a
// duplicate follow request a constraint-level no-op; self-follow
// prevention is an entry-point policy, not a stored constraint.
type Follow struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;index;uniqueIndex:idx_follows_user_author" json:"user_id"`
	User     User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID uint `gorm:"not null;index;uniqueIndex:idx_follows_user_author" json:"author_id"`
	Author   User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
