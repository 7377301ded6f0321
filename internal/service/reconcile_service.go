package service

import (
	"context"
	"log/slog"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// CounterAdjustment records one counter repaired by a reconciliation pass.
type CounterAdjustment struct {
	PostID  uint   `json:"post_id"`
	Counter string `json:"counter"`
	From    int64  `json:"from"`
	To      int64  `json:"to"`
}

// ReconcileService recomputes the denormalized post counters from their
// authoritative sources: the view event log for views, the likes set for
// likes and the live comment rows for comments. Counter drift can appear
// after partial failures; the deliberate write ordering biases drift toward
// undercounting, which this pass repairs.
type ReconcileService struct {
	db        *gorm.DB
	eventRepo repository.EventRepository
}

// NewReconcileService creates a ReconcileService.
func NewReconcileService(db *gorm.DB, eventRepo repository.EventRepository) *ReconcileService {
	return &ReconcileService{db: db, eventRepo: eventRepo}
}

type counterSnapshot struct {
	ID           uint
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
}

// Reconcile repairs drifted counters on every post and reports what changed.
func (s *ReconcileService) Reconcile(ctx context.Context) ([]CounterAdjustment, error) {
	var posts []counterSnapshot
	if err := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("id, view_count, like_count, comment_count").
		Find(&posts).Error; err != nil {
		return nil, models.NewStorageError(err)
	}

	viewCounts, err := toMap(s.eventRepo.ViewCountsByPost(ctx))
	if err != nil {
		return nil, err
	}
	likeCounts, err := toMap(s.eventRepo.LikeRowCountsByPost(ctx))
	if err != nil {
		return nil, err
	}
	commentCounts, err := toMap(s.eventRepo.LiveCommentCountsByPost(ctx))
	if err != nil {
		return nil, err
	}

	var adjustments []CounterAdjustment
	for _, p := range posts {
		updates := map[string]interface{}{}

		if want := viewCounts[p.ID]; want != p.ViewCount {
			updates["view_count"] = want
			adjustments = append(adjustments, CounterAdjustment{p.ID, "view_count", p.ViewCount, want})
		}
		if want := likeCounts[p.ID]; want != p.LikeCount {
			updates["like_count"] = want
			adjustments = append(adjustments, CounterAdjustment{p.ID, "like_count", p.LikeCount, want})
		}
		if want := commentCounts[p.ID]; want != p.CommentCount {
			updates["comment_count"] = want
			adjustments = append(adjustments, CounterAdjustment{p.ID, "comment_count", p.CommentCount, want})
		}

		if len(updates) == 0 {
			continue
		}
		if err := s.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("id = ?", p.ID).
			UpdateColumns(updates).Error; err != nil {
			return adjustments, models.NewStorageError(err)
		}
		cache.InvalidatePost(ctx, p.ID)

		middleware.Logger.InfoContext(ctx, "reconciled post counters",
			slog.Any("post_id", p.ID),
			slog.Int("fields", len(updates)),
		)
	}

	return adjustments, nil
}

func toMap(counts []repository.PostCount, err error) (map[uint]int64, error) {
	if err != nil {
		return nil, err
	}
	m := make(map[uint]int64, len(counts))
	for _, c := range counts {
		m[c.PostID] = c.Count
	}
	return m, nil
}
