// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a directed edge from a follower profile to a followed profile.
// At most one edge exists per (follower, following) pair; the unique index is
// the concurrency guard against duplicate creation. Edges are hard-deleted on
// unfollow.
//
// IsApproved is false when the target was private at creation time. A pending
// edge never contributes to follower/following counts, and there is no
// acceptance operation: pending edges are a terminal state.
type Follow struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FollowerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair" json:"follower_id"`
	FollowingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair;index" json:"following_id"`
	IsApproved  bool      `gorm:"not null;default:true" json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  *Profile `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following *Profile `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}

// BeforeCreate assigns a fresh UUID when none was supplied.
func (f *Follow) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
