package repository

import (
	"context"

	"loomline/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Delete(ctx context.Context, recipientID, id uuid.UUID) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	err := r.db.WithContext(ctx).Create(notification).Error
	return translateError(err, "notification", notification.ID.String())
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.WithContext(ctx).
		Preload("Sender").
		First(&notification, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "notification", id.String())
	}
	return &notification, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	q := r.db.WithContext(ctx).
		Preload("Sender").
		Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var notifications []*models.Notification
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, translateError(err, "notification", recipientID.String())
	}
	return notifications, nil
}

// MarkRead flags the given notifications as read, scoped to the recipient so
// one profile cannot touch another's rows. Returns the number updated.
func (r *notificationRepository) MarkRead(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND id IN ? AND is_read = ?", recipientID, ids, false).
		UpdateColumn("is_read", true)
	if result.Error != nil {
		return 0, translateError(result.Error, "notification", recipientID.String())
	}
	return result.RowsAffected, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		UpdateColumn("is_read", true)
	if result.Error != nil {
		return 0, translateError(result.Error, "notification", recipientID.String())
	}
	return result.RowsAffected, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err, "notification", recipientID.String())
	}
	return count, nil
}

func (r *notificationRepository) Delete(ctx context.Context, recipientID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("recipient_id = ? AND id = ?", recipientID, id).
		Delete(&models.Notification{})
	if result.Error != nil {
		return translateError(result.Error, "notification", id.String())
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("notification", id.String())
	}
	return nil
}
