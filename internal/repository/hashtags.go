package repository

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"loomline/internal/models"

	"gorm.io/gorm"
)

// trendDecayFactor is the per-hour multiplier applied to a hashtag's score
// before a new use bumps it.
const trendDecayFactor = 0.9

// HashtagRepository defines the interface for hashtag data operations.
type HashtagRepository interface {
	Track(ctx context.Context, name string, now time.Time) (*models.Hashtag, error)
	GetByName(ctx context.Context, name string) (*models.Hashtag, error)
	ListTrending(ctx context.Context, limit int) ([]*models.Hashtag, error)
}

type hashtagRepository struct {
	db *gorm.DB
}

// NewHashtagRepository creates a new hashtag repository.
func NewHashtagRepository(db *gorm.DB) HashtagRepository {
	return &hashtagRepository{db: db}
}

// trackRetries bounds the compare-and-swap loop in Track.
const trackRetries = 3

// Track records one use of a hashtag at time now. The trend score decays
// exponentially with the hours elapsed since the last update, then gains one
// point for this use. Creates the row on first sight.
//
// The update is a single conditional UPDATE guarded by the last_updated value
// read, with post_count incremented in SQL. A concurrent writer makes the
// guard miss, and the read-compute-update cycle is retried against the fresh
// row, so no use of a tag is ever lost.
func (r *hashtagRepository) Track(ctx context.Context, name string, now time.Time) (*models.Hashtag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, models.NewValidationError("hashtag name is required")
	}

	for attempt := 0; attempt < trackRetries; attempt++ {
		var tag models.Hashtag
		err := r.db.WithContext(ctx).First(&tag, "name = ?", name).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, translateError(err, "hashtag", name)
			}
			tag = models.Hashtag{
				Name:        name,
				PostCount:   1,
				TrendScore:  1,
				LastUpdated: now,
			}
			createErr := r.db.WithContext(ctx).Create(&tag).Error
			if createErr == nil {
				return &tag, nil
			}
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				// Another writer created the row first; update it instead.
				continue
			}
			return nil, translateError(createErr, "hashtag", name)
		}

		hours := now.Sub(tag.LastUpdated).Hours()
		if hours < 0 {
			hours = 0
		}
		score := tag.TrendScore*math.Pow(trendDecayFactor, hours) + 1

		res := r.db.WithContext(ctx).Model(&models.Hashtag{}).
			Where("id = ? AND last_updated = ?", tag.ID, tag.LastUpdated).
			UpdateColumns(map[string]interface{}{
				"post_count":   gorm.Expr("post_count + ?", 1),
				"trend_score":  score,
				"last_updated": now,
			})
		if res.Error != nil {
			return nil, translateError(res.Error, "hashtag", name)
		}
		if res.RowsAffected == 1 {
			tag.PostCount++
			tag.TrendScore = score
			tag.LastUpdated = now
			return &tag, nil
		}
	}

	return nil, models.NewTransientError(errors.New("hashtag update contention: " + name))
}

func (r *hashtagRepository) GetByName(ctx context.Context, name string) (*models.Hashtag, error) {
	var tag models.Hashtag
	err := r.db.WithContext(ctx).First(&tag, "name = ?", strings.ToLower(name)).Error
	if err != nil {
		return nil, translateError(err, "hashtag", name)
	}
	return &tag, nil
}

func (r *hashtagRepository) ListTrending(ctx context.Context, limit int) ([]*models.Hashtag, error) {
	var tags []*models.Hashtag
	err := r.db.WithContext(ctx).
		Order("trend_score DESC").
		Limit(limit).
		Find(&tags).Error
	if err != nil {
		return nil, translateError(err, "hashtag", "")
	}
	return tags, nil
}
