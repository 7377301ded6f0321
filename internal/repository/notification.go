package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, userID uint) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidateUnreadCount(ctx, n.RecipientID)
	return nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, userID uint) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := cache.Aside(ctx, cache.UnreadCountKey(userID), &count, cache.UnreadCountTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.Notification{}).
			Where("recipient_id = ? AND is_read = ?", userID, false).
			Count(&count).Error
	})
	if err != nil {
		return 0, models.NewStorageError(err)
	}
	return count, nil
}

// MarkRead flips the read flag. Marking an already-read notification again
// is a no-op, not an error; an unknown id is NotFound.
func (r *notificationRepository) MarkRead(ctx context.Context, id uint) error {
	upd := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		UpdateColumn("is_read", true)
	if upd.Error != nil {
		return models.NewStorageError(upd.Error)
	}
	if upd.RowsAffected == 0 {
		return models.NewNotFoundError("Notification", id)
	}

	var recipientID uint
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Pluck("recipient_id", &recipientID).Error; err == nil {
		cache.InvalidateUnreadCount(ctx, recipientID)
	}
	return nil
}

// MarkAllRead flips every unread notification owned by the user in a single
// conditional bulk update, so a concurrent reader never observes a partial
// application. Returns the number of notifications updated.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	upd := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		UpdateColumn("is_read", true)
	if upd.Error != nil {
		return 0, models.NewStorageError(upd.Error)
	}
	cache.InvalidateUnreadCount(ctx, userID)
	return upd.RowsAffected, nil
}
