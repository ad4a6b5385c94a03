package repository

import (
	"context"

	"loomline/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like edge data operations.
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	DeleteForPost(ctx context.Context, profileID, postID uuid.UUID) error
	DeleteForComment(ctx context.Context, profileID, commentID uuid.UUID) error
	LikedPostIDs(ctx context.Context, profileID uuid.UUID, postIDs []uuid.UUID) ([]uuid.UUID, error)
	ListPostLikers(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*models.Profile, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	err := r.db.WithContext(ctx).Create(like).Error
	return translateError(err, "like", like.ProfileID.String())
}

func (r *likeRepository) DeleteForPost(ctx context.Context, profileID, postID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND post_id = ?", profileID, postID).
		Delete(&models.Like{})
	if result.Error != nil {
		return translateError(result.Error, "like", postID.String())
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("like", postID.String())
	}
	return nil
}

func (r *likeRepository) DeleteForComment(ctx context.Context, profileID, commentID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND comment_id = ?", profileID, commentID).
		Delete(&models.Like{})
	if result.Error != nil {
		return translateError(result.Error, "like", commentID.String())
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("like", commentID.String())
	}
	return nil
}

func (r *likeRepository) LikedPostIDs(ctx context.Context, profileID uuid.UUID, postIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("profile_id = ? AND post_id IN ?", profileID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, translateError(err, "like", profileID.String())
	}
	return ids, nil
}

func (r *likeRepository) ListPostLikers(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Joins("JOIN likes ON likes.profile_id = profiles.id").
		Where("likes.post_id = ?", postID).
		Order("likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, translateError(err, "like", postID.String())
	}
	return profiles, nil
}
