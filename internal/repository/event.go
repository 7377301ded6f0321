package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostCount pairs a post id with an event count, used by reconciliation.
type PostCount struct {
	PostID uint
	Count  int64
}

// EventRepository provides read access to the append-only engagement event
// logs. The logs are authoritative for historical time series only; current
// totals live on the Post counters.
type EventRepository interface {
	ViewsForPosts(ctx context.Context, postIDs []uint) ([]models.PostViewEvent, error)
	LikesForPosts(ctx context.Context, postIDs []uint) ([]models.PostLikeEvent, error)
	CommentsForPosts(ctx context.Context, postIDs []uint) ([]models.PostCommentEvent, error)
	ViewCountsByPost(ctx context.Context) ([]PostCount, error)
	LikeRowCountsByPost(ctx context.Context) ([]PostCount, error)
	LiveCommentCountsByPost(ctx context.Context) ([]PostCount, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) ViewsForPosts(ctx context.Context, postIDs []uint) ([]models.PostViewEvent, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var events []models.PostViewEvent
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("occurred_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return events, nil
}

func (r *eventRepository) LikesForPosts(ctx context.Context, postIDs []uint) ([]models.PostLikeEvent, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var events []models.PostLikeEvent
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("occurred_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return events, nil
}

func (r *eventRepository) CommentsForPosts(ctx context.Context, postIDs []uint) ([]models.PostCommentEvent, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var events []models.PostCommentEvent
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("occurred_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return events, nil
}

func (r *eventRepository) ViewCountsByPost(ctx context.Context) ([]PostCount, error) {
	var counts []PostCount
	err := r.db.WithContext(ctx).
		Model(&models.PostViewEvent{}).
		Select("post_id, COUNT(*) as count").
		Group("post_id").
		Scan(&counts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return counts, nil
}

// LikeRowCountsByPost counts the likes join table, not the like event log:
// the set membership is the source of truth for current like counts.
func (r *eventRepository) LikeRowCountsByPost(ctx context.Context) ([]PostCount, error) {
	var counts []PostCount
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("post_id, COUNT(*) as count").
		Group("post_id").
		Scan(&counts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return counts, nil
}

func (r *eventRepository) LiveCommentCountsByPost(ctx context.Context) ([]PostCount, error) {
	var counts []PostCount
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Group("post_id").
		Scan(&counts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return counts, nil
}
