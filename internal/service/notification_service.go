package service

import (
	"context"
	"log/slog"

	"inkwell/internal/events"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// NotificationService creates and queries notification records and tracks
// their read state. It subscribes to the domain event bus so engagement
// recording never creates notifications inline.
//
// Notifications are pull-only: there is no push delivery, and repeated
// qualifying actions produce repeated notifications (no deduplication).
// A user acting on their own content still notifies themselves; suppression
// is intentionally not applied.
type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// SubscribeTo registers the service on the event bus.
func (s *NotificationService) SubscribeTo(bus *events.Bus) {
	bus.Subscribe(s.HandleEvent)
}

// HandleEvent translates a domain event into a notification record.
func (s *NotificationService) HandleEvent(ctx context.Context, e events.Event) {
	var typ models.NotificationType
	switch e.Kind {
	case events.Liked:
		typ = models.NotificationLike
	case events.Commented:
		typ = models.NotificationComment
	case events.Replied:
		typ = models.NotificationReply
	case events.Followed:
		typ = models.NotificationFollow
	default:
		return
	}

	var postID *uint
	if e.PostID != 0 {
		id := e.PostID
		postID = &id
	}

	if _, err := s.Notify(ctx, e.RecipientID, typ, e.ActorID, postID); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to create notification",
			slog.String("type", string(typ)),
			slog.Any("recipient_id", e.RecipientID),
			slog.String("error", err.Error()),
		)
	}
}

// Notify creates one unread notification.
func (s *NotificationService) Notify(
	ctx context.Context,
	recipientID uint,
	typ models.NotificationType,
	actorID uint,
	postID *uint,
) (*models.Notification, error) {
	n := &models.Notification{
		RecipientID: recipientID,
		Type:        typ,
		ActorID:     actorID,
		PostID:      postID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	middleware.NotificationsCreated.WithLabelValues(string(typ)).Inc()
	return n, nil
}

// ListForUser returns the user's notifications, most recent first.
func (s *NotificationService) ListForUser(ctx context.Context, userID uint) ([]*models.Notification, error) {
	return s.repo.ListByRecipient(ctx, userID)
}

// UnreadCount returns the number of unread notifications for the user.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}

// MarkRead marks a single notification as read. Already-read notifications
// are a no-op; an unknown id fails with NotFound.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID uint) error {
	return s.repo.MarkRead(ctx, notificationID)
}

// MarkAllRead marks every unread notification owned by the user as read in
// one bulk update and returns the number updated.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
