// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is attached to exactly one post and may be nested one level under a
// parent comment; the parent tracks its replies through ReplyCount. Comments
// are soft-deleted to keep sibling replies readable.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
	Profile   *Profile  `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`

	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`

	Content  string   `gorm:"type:text;not null" json:"content"`
	MediaURL string   `json:"media_url,omitempty"`
	Mentions []string `gorm:"serializer:json" json:"mentions,omitempty"`

	LikeCount  int  `gorm:"not null;default:0" json:"like_count"`
	ReplyCount int  `gorm:"not null;default:0" json:"reply_count"`
	IsEdited   bool `gorm:"not null;default:false" json:"is_edited"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a fresh UUID when none was supplied.
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
