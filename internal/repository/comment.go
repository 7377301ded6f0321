package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	// Create persists the comment, appends a comment event and increments the
	// parent post's comment counter in one transaction.
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	// Delete removes the comment and decrements the parent post's comment
	// counter in one transaction.
	Delete(ctx context.Context, id uint) error
	AppendReply(ctx context.Context, commentID uint, reply models.Reply) (*models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return models.NewStorageError(err)
		}
		at := comment.CreatedAt
		if at.IsZero() {
			at = time.Now().UTC()
		}
		if err := tx.Create(&models.PostCommentEvent{PostID: comment.PostID, OccurredAt: at}).Error; err != nil {
			return models.NewStorageError(err)
		}
		upd := tx.Model(&models.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1"))
		if upd.Error != nil {
			return models.NewStorageError(upd.Error)
		}
		if upd.RowsAffected == 0 {
			return models.NewNotFoundError("Post", comment.PostID)
		}
		return nil
	})
	if err == nil {
		cache.InvalidatePost(ctx, comment.PostID)
	}
	return err
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewStorageError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at desc").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	var postID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Comment", id)
			}
			return models.NewStorageError(err)
		}
		postID = comment.PostID

		if err := tx.Delete(&models.Comment{}, id).Error; err != nil {
			return models.NewStorageError(err)
		}

		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("comment_count", gorm.Expr("CASE WHEN comment_count > 0 THEN comment_count - 1 ELSE 0 END")).Error; err != nil {
			return models.NewStorageError(err)
		}
		return nil
	})
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

// AppendReply adds an embedded reply to the comment's reply list and returns
// the updated comment.
func (r *commentRepository) AppendReply(ctx context.Context, commentID uint, reply models.Reply) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Comment", commentID)
			}
			return models.NewStorageError(err)
		}

		comment.Replies = append(comment.Replies, reply)
		if err := tx.Model(&comment).UpdateColumn("replies", comment.Replies).Error; err != nil {
			return models.NewStorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
