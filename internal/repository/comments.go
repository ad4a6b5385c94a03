package repository

import (
	"context"

	"loomline/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*models.Comment, error)
	ListReplies(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]*models.Comment, error)

	IncLikeCount(ctx context.Context, id uuid.UUID) error
	DecLikeCount(ctx context.Context, id uuid.UUID) error
	IncReplyCount(ctx context.Context, id uuid.UUID) error
	DecReplyCount(ctx context.Context, id uuid.UUID) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Create(comment).Error
	return translateError(err, "comment", comment.ID.String())
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Profile").
		First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "comment", id.String())
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Save(comment).Error
	return translateError(err, "comment", comment.ID.String())
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, "comment", id.String())
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("comment", id.String())
	}
	return nil
}

// ListByPost returns top-level comments on a post, newest first.
func (r *commentRepository) ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, translateError(err, "comment", postID.String())
	}
	return comments, nil
}

// ListReplies returns replies under a comment, oldest first.
func (r *commentRepository) ListReplies(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, translateError(err, "comment", parentID.String())
	}
	return comments, nil
}

func (r *commentRepository) bump(ctx context.Context, id uuid.UUID, column string, delta int) error {
	q := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where(column + " > 0")
	}
	err := q.UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
	return translateError(err, "comment", id.String())
}

func (r *commentRepository) IncLikeCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "like_count", 1)
}

func (r *commentRepository) DecLikeCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "like_count", -1)
}

func (r *commentRepository) IncReplyCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "reply_count", 1)
}

func (r *commentRepository) DecReplyCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "reply_count", -1)
}
