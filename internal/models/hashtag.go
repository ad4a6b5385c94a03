// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hashtag tracks per-tag usage. Names are stored case-folded. TrendScore is a
// time-decayed popularity value: on each use the old score decays by 10% per
// elapsed hour and gains 1.
type Hashtag struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	PostCount   int       `gorm:"not null;default:0" json:"post_count"`
	TrendScore  float64   `gorm:"not null;default:0;index" json:"trend_score"`
	LastUpdated time.Time `json:"last_updated"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a fresh UUID when none was supplied.
func (h *Hashtag) BeforeCreate(_ *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
