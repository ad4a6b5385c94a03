package repository

import (
	"context"

	"loomline/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	GetByUsernames(ctx context.Context, usernames []string) ([]*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	Delete(ctx context.Context, id uuid.UUID) error

	IncFollowerCount(ctx context.Context, id uuid.UUID) error
	DecFollowerCount(ctx context.Context, id uuid.UUID) error
	IncFollowingCount(ctx context.Context, id uuid.UUID) error
	DecFollowingCount(ctx context.Context, id uuid.UUID) error
	IncPostCount(ctx context.Context, id uuid.UUID) error
	DecPostCount(ctx context.Context, id uuid.UUID) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	err := r.db.WithContext(ctx).Create(profile).Error
	return translateError(err, "profile", profile.Username)
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "profile", id.String())
	}
	return &profile, nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).First(&profile, "username = ?", username).Error
	if err != nil {
		return nil, translateError(err, "profile", username)
	}
	return &profile, nil
}

func (r *profileRepository) GetByUsernames(ctx context.Context, usernames []string) ([]*models.Profile, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	var profiles []*models.Profile
	err := r.db.WithContext(ctx).Where("username IN ?", usernames).Find(&profiles).Error
	if err != nil {
		return nil, translateError(err, "profile", "")
	}
	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	err := r.db.WithContext(ctx).Save(profile).Error
	return translateError(err, "profile", profile.ID.String())
}

func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Profile{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, "profile", id.String())
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("profile", id.String())
	}
	return nil
}

// bump adjusts a counter column by delta. Decrements carry a floor guard so
// the counter never goes below zero even under concurrent updates.
func (r *profileRepository) bump(ctx context.Context, id uuid.UUID, column string, delta int) error {
	q := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where(column+" > 0")
	}
	err := q.UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
	return translateError(err, "profile", id.String())
}

func (r *profileRepository) IncFollowerCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "follower_count", 1)
}

func (r *profileRepository) DecFollowerCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "follower_count", -1)
}

func (r *profileRepository) IncFollowingCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "following_count", 1)
}

func (r *profileRepository) DecFollowingCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "following_count", -1)
}

func (r *profileRepository) IncPostCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "post_count", 1)
}

func (r *profileRepository) DecPostCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "post_count", -1)
}
