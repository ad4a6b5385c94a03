// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeTarget names the kind of entity a like attaches to.
type LikeTarget string

const (
	// LikeTargetPost marks a like on a post.
	LikeTargetPost LikeTarget = "post"
	// LikeTargetComment marks a like on a comment.
	LikeTargetComment LikeTarget = "comment"
)

// Like joins a profile to either a post or a comment; exactly one of PostID
// and CommentID is set. Row existence is the source of truth for "has liked";
// the LikeCount on the target is a cached derived value. The composite unique
// indexes make concurrent duplicate creation fail at the constraint, which the
// repository surfaces as a conflict. Likes are hard-deleted on unlike.
type Like struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_likes_profile_post;uniqueIndex:idx_likes_profile_comment" json:"profile_id"`
	PostID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_likes_profile_post;index" json:"post_id,omitempty"`
	CommentID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_likes_profile_comment;index" json:"comment_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	Profile *Profile `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
}

// BeforeCreate assigns a fresh UUID when none was supplied.
func (l *Like) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
