// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType enumerates the closed set of notification kinds.
type NotificationType string

const (
	NotificationLike          NotificationType = "LIKE"
	NotificationComment       NotificationType = "COMMENT"
	NotificationFollow        NotificationType = "FOLLOW"
	NotificationFollowRequest NotificationType = "FOLLOW_REQUEST"
	NotificationMention       NotificationType = "MENTION"
	NotificationReply         NotificationType = "REPLY"
	NotificationRepost        NotificationType = "REPOST"
	NotificationSystem        NotificationType = "SYSTEM"
)

// EntityType names the kind of entity a notification references.
type EntityType string

const (
	EntityPost    EntityType = "POST"
	EntityComment EntityType = "COMMENT"
	EntityProfile EntityType = "PROFILE"
	EntitySystem  EntityType = "SYSTEM"
)

// Notification is created only as a side effect of a successful mutation and
// never feeds back into the entities that spawned it. Rows mutate only to flip
// IsRead, and the recipient may hard-delete them.
type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipient_id"`
	SenderID    *uuid.UUID `gorm:"type:uuid" json:"sender_id,omitempty"`
	Sender      *Profile   `gorm:"foreignKey:SenderID" json:"sender,omitempty"`

	Type       NotificationType `gorm:"size:20;not null;index" json:"type"`
	EntityType EntityType       `gorm:"size:20;not null" json:"entity_type"`
	EntityID   uuid.UUID        `gorm:"type:uuid" json:"entity_id"`

	Message  string                 `gorm:"size:255;not null" json:"message"`
	IsRead   bool                   `gorm:"not null;default:false;index" json:"is_read"`
	Metadata map[string]interface{} `gorm:"serializer:json" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// BeforeCreate assigns a fresh UUID when none was supplied.
func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
