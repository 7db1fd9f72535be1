// Package models contains data structures for the application's domain models.
package models

import "time"

// Group is a topical category posts can optionally belong to. Groups are
// created by an administrator-like actor (the seeder) and are never
// deleted in request flow. Deleting a group nulls the reference on its
// posts; the posts survive.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
