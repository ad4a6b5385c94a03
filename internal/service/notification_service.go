package service

import (
	"context"

	"loomline/internal/models"
	"loomline/internal/repository"

	"github.com/google/uuid"
)

// NotificationService exposes the recipient-facing notification inbox.
type NotificationService struct {
	store repository.Store
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(store repository.Store) *NotificationService {
	return &NotificationService{store: store}
}

// List returns a recipient's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	limit, offset = pageBounds(limit, offset)
	return s.store.Notifications().ListByRecipient(ctx, recipientID, unreadOnly, limit, offset)
}

// MarkRead flips the given notifications to read and returns how many rows
// changed. IDs belonging to other recipients are ignored.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, models.NewValidationError("at least one notification id is required")
	}
	return s.store.Notifications().MarkRead(ctx, recipientID, ids)
}

// MarkAllRead flips every unread notification for the recipient.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.store.Notifications().MarkAllRead(ctx, recipientID)
}

// UnreadCount returns the recipient's unread notification count.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.store.Notifications().CountUnread(ctx, recipientID)
}

// Delete removes one notification from the recipient's inbox.
func (s *NotificationService) Delete(ctx context.Context, recipientID, id uuid.UUID) error {
	return s.store.Notifications().Delete(ctx, recipientID, id)
}
