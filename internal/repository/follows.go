package repository

import (
	"context"
	"errors"

	"loomline/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow edge data operations.
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Get(ctx context.Context, followerID, followingID uuid.UUID) (*models.Follow, error)
	Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	IsApprovedFollower(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	Delete(ctx context.Context, followerID, followingID uuid.UUID) (*models.Follow, error)
	ListFollowers(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*models.Profile, error)
	ListFollowing(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*models.Profile, error)
	ApprovedFollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error)
	FollowingOf(ctx context.Context, viewerID uuid.UUID, profileIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	FollowersOf(ctx context.Context, viewerID uuid.UUID, profileIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	err := r.db.WithContext(ctx).Create(follow).Error
	return translateError(err, "follow", follow.FollowerID.String())
}

func (r *followRepository) Get(ctx context.Context, followerID, followingID uuid.UUID) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.WithContext(ctx).
		First(&follow, "follower_id = ? AND following_id = ?", followerID, followingID).Error
	if err != nil {
		return nil, translateError(err, "follow", followerID.String())
	}
	return &follow, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, translateError(err, "follow", followerID.String())
	}
	return count > 0, nil
}

func (r *followRepository) IsApprovedFollower(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ? AND is_approved = ?", followerID, followingID, true).
		Count(&count).Error
	if err != nil {
		return false, translateError(err, "follow", followerID.String())
	}
	return count > 0, nil
}

// Delete removes the edge and returns the deleted row so callers can tell
// whether it was approved. Returns NotFound when no edge exists.
func (r *followRepository) Delete(ctx context.Context, followerID, followingID uuid.UUID) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.WithContext(ctx).
		First(&follow, "follower_id = ? AND following_id = ?", followerID, followingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("follow", followerID.String())
		}
		return nil, translateError(err, "follow", followerID.String())
	}

	result := r.db.WithContext(ctx).Delete(&models.Follow{}, "id = ?", follow.ID)
	if result.Error != nil {
		return nil, translateError(result.Error, "follow", followerID.String())
	}
	if result.RowsAffected == 0 {
		return nil, models.NewNotFoundError("follow", followerID.String())
	}
	return &follow, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Joins("JOIN follows ON follows.follower_id = profiles.id").
		Where("follows.following_id = ? AND follows.is_approved = ?", profileID, true).
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, translateError(err, "follow", profileID.String())
	}
	return profiles, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Joins("JOIN follows ON follows.following_id = profiles.id").
		Where("follows.follower_id = ? AND follows.is_approved = ?", profileID, true).
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, translateError(err, "follow", profileID.String())
	}
	return profiles, nil
}

func (r *followRepository) ApprovedFollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND is_approved = ?", followerID, true).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, translateError(err, "follow", followerID.String())
	}
	return ids, nil
}

// FollowingOf reports which of profileIDs the viewer has an approved follow to.
func (r *followRepository) FollowingOf(ctx context.Context, viewerID uuid.UUID, profileIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if len(profileIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id IN ? AND is_approved = ?", viewerID, profileIDs, true).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, translateError(err, "follow", viewerID.String())
	}
	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// FollowersOf reports which of profileIDs have an approved follow to the viewer.
func (r *followRepository) FollowersOf(ctx context.Context, viewerID uuid.UUID, profileIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if len(profileIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ? AND follower_id IN ? AND is_approved = ?", viewerID, profileIDs, true).
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, translateError(err, "follow", viewerID.String())
	}
	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
