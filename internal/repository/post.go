// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// AuthorTotals is a point-in-time snapshot of the denormalized counters
// summed across an author's posts.
type AuthorTotals struct {
	TotalPosts    int64 `json:"total_posts"`
	TotalViews    int64 `json:"total_views"`
	TotalLikes    int64 `json:"total_likes"`
	TotalComments int64 `json:"total_comments"`
	TotalShares   int64 `json:"total_shares"`
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	List(ctx context.Context, sort string, limit, offset int) ([]*models.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error)
	IDsByAuthor(ctx context.Context, authorID uint) ([]uint, error)
	TotalsByAuthor(ctx context.Context, authorID uint) (*AuthorTotals, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error

	RecordView(ctx context.Context, postID uint, at time.Time) error
	RecordShare(ctx context.Context, postID uint) (int, error)
	Like(ctx context.Context, userID, postID uint, at time.Time) error
	Unlike(ctx context.Context, userID, postID uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)

	// Bookmark saves the post for the user. It is idempotent: bookmarking an
	// already-bookmarked post reports created=false and no error.
	Bookmark(ctx context.Context, userID, postID uint) (created bool, err error)
	Unbookmark(ctx context.Context, userID, postID uint) error
	ListBookmarked(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
}

// Sort keys accepted by List. SortNew is the default; SortLikes and
// SortViews surface the most-engaged posts first (featured ordering).
const (
	SortNew   = "new"
	SortLikes = "likes"
	SortViews = "views"
)

func orderClause(sort string) string {
	switch sort {
	case SortLikes:
		return "like_count DESC, created_at DESC"
	case SortViews:
		return "view_count DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post

	var err error
	if currentUserID == 0 {
		// Anonymous reads are cacheable; the liked flag is always false.
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
			return r.db.WithContext(ctx).Preload("User").First(&post, id).Error
		})
	} else {
		err = r.db.WithContext(ctx).Preload("User").First(&post, id).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewStorageError(err)
	}

	if currentUserID != 0 {
		liked, likedErr := r.IsLiked(ctx, currentUserID, id)
		if likedErr != nil {
			return nil, likedErr
		}
		post.Liked = liked
	}

	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return posts, nil
}

func (r *postRepository) List(ctx context.Context, sort string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Order(orderClause(sort)).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id IN ?", authorIDs).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + query + "%"
	// LOWER(...) LIKE keeps the match case-insensitive on both supported drivers.
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?) OR LOWER(CAST(tags AS TEXT)) LIKE LOWER(?)", like, like, like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return posts, nil
}

func (r *postRepository) IDsByAuthor(ctx context.Context, authorID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id = ?", authorID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return ids, nil
}

func (r *postRepository) TotalsByAuthor(ctx context.Context, authorID uint) (*AuthorTotals, error) {
	var totals AuthorTotals
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("COUNT(*) as total_posts, "+
			"COALESCE(SUM(view_count), 0) as total_views, "+
			"COALESCE(SUM(like_count), 0) as total_likes, "+
			"COALESCE(SUM(comment_count), 0) as total_comments, "+
			"COALESCE(SUM(share_count), 0) as total_shares").
		Where("user_id = ?", authorID).
		Scan(&totals).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return &totals, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// RecordView appends a view event and increments the denormalized view
// counter in one transaction. The event write happens first; a missing post
// surfaces on the counter update and rolls the event back.
func (r *postRepository) RecordView(ctx context.Context, postID uint, at time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.PostViewEvent{PostID: postID, OccurredAt: at}).Error; err != nil {
			return models.NewStorageError(err)
		}
		upd := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1"))
		if upd.Error != nil {
			return models.NewStorageError(upd.Error)
		}
		if upd.RowsAffected == 0 {
			return models.NewNotFoundError("Post", postID)
		}
		return nil
	})
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

// RecordShare increments the share counter and returns the new value.
func (r *postRepository) RecordShare(ctx context.Context, postID uint) (int, error) {
	var shares int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upd := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("share_count", gorm.Expr("share_count + 1"))
		if upd.Error != nil {
			return models.NewStorageError(upd.Error)
		}
		if upd.RowsAffected == 0 {
			return models.NewNotFoundError("Post", postID)
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Pluck("share_count", &shares).Error
	})
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return shares, err
}

// Like atomically adds the user to the post's liked-by set, appends a like
// event and increments the like counter. The INSERT ... ON CONFLICT DO
// NOTHING guard closes the check-then-write race: two concurrent likes by
// the same user cannot both pass.
func (r *postRepository) Like(ctx context.Context, userID, postID uint, at time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ins := tx.Exec(
			`INSERT INTO likes (user_id, post_id, created_at) VALUES (?, ?, ?) ON CONFLICT (user_id, post_id) DO NOTHING`,
			userID, postID, at,
		)
		if ins.Error != nil {
			return models.NewStorageError(ins.Error)
		}
		if ins.RowsAffected == 0 {
			return models.NewAlreadyLikedError(postID)
		}

		if err := tx.Create(&models.PostLikeEvent{PostID: postID, OccurredAt: at}).Error; err != nil {
			return models.NewStorageError(err)
		}

		upd := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1"))
		if upd.Error != nil {
			return models.NewStorageError(upd.Error)
		}
		if upd.RowsAffected == 0 {
			return models.NewNotFoundError("Post", postID)
		}
		return nil
	})
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

// Unlike removes the user from the liked-by set, removes one like event for
// the post (the log is not strictly per-user) and decrements the counter.
func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&exists).Error; err != nil {
			return models.NewStorageError(err)
		}
		if exists == 0 {
			return models.NewNotFoundError("Post", postID)
		}

		del := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if del.Error != nil {
			return models.NewStorageError(del.Error)
		}
		if del.RowsAffected == 0 {
			return models.NewNotLikedError(postID)
		}

		if err := tx.Exec(
			`DELETE FROM post_like_events WHERE id = (SELECT id FROM post_like_events WHERE post_id = ? LIMIT 1)`,
			postID,
		).Error; err != nil {
			return models.NewStorageError(err)
		}

		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error; err != nil {
			return models.NewStorageError(err)
		}
		return nil
	})
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewStorageError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Bookmark(ctx context.Context, userID, postID uint) (bool, error) {
	var exists int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&exists).Error; err != nil {
		return false, models.NewStorageError(err)
	}
	if exists == 0 {
		return false, models.NewNotFoundError("Post", postID)
	}

	ins := r.db.WithContext(ctx).Exec(
		`INSERT INTO bookmarks (user_id, post_id, created_at) VALUES (?, ?, ?) ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID, time.Now().UTC(),
	)
	if ins.Error != nil {
		return false, models.NewStorageError(ins.Error)
	}
	return ins.RowsAffected > 0, nil
}

func (r *postRepository) Unbookmark(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Bookmark{}).Error
	if err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (r *postRepository) ListBookmarked(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN bookmarks ON bookmarks.post_id = posts.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return posts, nil
}
