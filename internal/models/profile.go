// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the identity record for a social-graph participant. Counter
// columns are denormalized and maintained exclusively through SQL-level
// increments; they are never computed in application memory.
type Profile struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Username       string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	DisplayName    string    `gorm:"size:100" json:"display_name"`
	Bio            string    `gorm:"type:text" json:"bio"`
	AvatarURL      string    `json:"avatar_url"`
	IsPrivate      bool      `gorm:"not null;default:false" json:"is_private"`
	IsVerified     bool      `gorm:"not null;default:false" json:"is_verified"`
	FollowerCount  int       `gorm:"not null;default:0" json:"follower_count"`
	FollowingCount int       `gorm:"not null;default:0" json:"following_count"`
	PostCount      int       `gorm:"not null;default:0" json:"post_count"`

	// IsFollowing and IsFollowedBy are computed per requester; not persisted.
	IsFollowing  bool `gorm:"-" json:"is_following"`
	IsFollowedBy bool `gorm:"-" json:"is_followed_by"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a fresh UUID when none was supplied.
func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
