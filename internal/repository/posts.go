package repository

import (
	"context"

	"loomline/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListFeed(ctx context.Context, authorIDs []uuid.UUID, limit, offset int) ([]*models.Post, error)
	ListReplies(ctx context.Context, rootID uuid.UUID, limit, offset int) ([]*models.Post, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*models.Post, error)

	IncLikeCount(ctx context.Context, id uuid.UUID) error
	DecLikeCount(ctx context.Context, id uuid.UUID) error
	IncCommentCount(ctx context.Context, id uuid.UUID) error
	DecCommentCount(ctx context.Context, id uuid.UUID) error
	IncRepostCount(ctx context.Context, id uuid.UUID) error
	DecRepostCount(ctx context.Context, id uuid.UUID) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	return translateError(err, "post", post.ID.String())
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Profile").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "post", id.String())
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, "post", id.String())
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("post", id.String())
	}
	return nil
}

// ListFeed returns root posts (no parent) from the given authors, newest first.
func (r *postRepository) ListFeed(ctx context.Context, authorIDs []uuid.UUID, limit, offset int) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("profile_id IN ? AND parent_id IS NULL", authorIDs).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, translateError(err, "post", "")
	}
	return posts, nil
}

// ListReplies returns direct replies to a post, oldest first to preserve
// conversation order.
func (r *postRepository) ListReplies(ctx context.Context, rootID uuid.UUID, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("parent_id = ?", rootID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, translateError(err, "post", rootID.String())
	}
	return posts, nil
}

func (r *postRepository) ListByProfile(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, translateError(err, "post", profileID.String())
	}
	return posts, nil
}

func (r *postRepository) bump(ctx context.Context, id uuid.UUID, column string, delta int) error {
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where(column + " > 0")
	}
	err := q.UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
	return translateError(err, "post", id.String())
}

func (r *postRepository) IncLikeCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "like_count", 1)
}

func (r *postRepository) DecLikeCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "like_count", -1)
}

func (r *postRepository) IncCommentCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "comment_count", 1)
}

func (r *postRepository) DecCommentCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "comment_count", -1)
}

func (r *postRepository) IncRepostCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "repost_count", 1)
}

func (r *postRepository) DecRepostCount(ctx context.Context, id uuid.UUID) error {
	return r.bump(ctx, id, "repost_count", -1)
}
