// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a content unit: a root post, a thread reply (ParentID set), or a
// repost of another post. Posts are soft-deleted so sibling replies stay
// resolvable.
type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
	Profile   *Profile  `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`

	Content   string   `gorm:"type:text" json:"content"`
	MediaRefs []string `gorm:"serializer:json" json:"media_refs,omitempty"`

	// Thread fields. RootThreadID points at the post that started the reply
	// chain; ThreadPosition is the depth below it, 0 for root posts.
	ParentID       *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	RootThreadID   *uuid.UUID `gorm:"type:uuid;index" json:"root_thread_id,omitempty"`
	ThreadPosition int        `gorm:"not null;default:0" json:"thread_position"`

	IsRepost       bool       `gorm:"not null;default:false" json:"is_repost"`
	OriginalPostID *uuid.UUID `gorm:"type:uuid;index" json:"original_post_id,omitempty"`

	// Cached counters, maintained via atomic SQL expressions only.
	LikeCount    int `gorm:"not null;default:0" json:"like_count"`
	CommentCount int `gorm:"not null;default:0" json:"comment_count"`
	RepostCount  int `gorm:"not null;default:0" json:"repost_count"`

	Tags     []string `gorm:"serializer:json" json:"tags,omitempty"`
	Mentions []string `gorm:"serializer:json" json:"mentions,omitempty"`
	IsPublic bool     `gorm:"not null;default:true" json:"is_public"`

	// IsLiked is computed per requester at read time; not persisted.
	IsLiked bool `gorm:"-" json:"is_liked"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a fresh UUID when none was supplied.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsReply reports whether the post is a thread reply rather than a root post.
func (p *Post) IsReply() bool {
	return p.ParentID != nil
}
