package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/events"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const maxCommentLen = 10000

// EngagementService applies view, like, comment and reply actions to posts,
// keeping the denormalized counters and the append-only event logs
// consistent. Side effects that produce notifications are published as
// domain events rather than created inline.
type EngagementService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	bus         *events.Bus
	now         func() time.Time
}

// CommentInput carries a new comment submission.
type CommentInput struct {
	PostID   uint
	AuthorID uint
	Text     string
}

// ReplyInput carries a new reply submission.
type ReplyInput struct {
	CommentID uint
	AuthorID  uint
	Text      string
}

// UpdateCommentInput carries a comment edit.
type UpdateCommentInput struct {
	CommentID   uint
	RequesterID uint
	Text        string
}

// NewEngagementService creates an EngagementService.
func NewEngagementService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	bus *events.Bus,
) *EngagementService {
	return &EngagementService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		bus:         bus,
		now:         time.Now,
	}
}

// RecordView appends a view event and increments the post's view counter.
// Every call counts: views are deliberately not deduplicated per user.
func (s *EngagementService) RecordView(ctx context.Context, postID uint) error {
	if err := s.postRepo.RecordView(ctx, postID, s.now().UTC()); err != nil {
		return err
	}
	middleware.EngagementEvents.WithLabelValues("view").Inc()
	return nil
}

// RecordLike likes the post on behalf of userID and returns the refreshed
// post. A repeat like fails with AlreadyLiked and changes nothing.
func (s *EngagementService) RecordLike(ctx context.Context, postID, userID uint) (*models.Post, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required to like a post")
	}

	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.Like(ctx, userID, postID, s.now().UTC()); err != nil {
		return nil, err
	}
	middleware.EngagementEvents.WithLabelValues("like").Inc()

	s.bus.Publish(ctx, events.Event{
		Kind:        events.Liked,
		ActorID:     userID,
		RecipientID: post.UserID,
		PostID:      postID,
		OccurredAt:  s.now().UTC(),
	})

	return s.postRepo.GetByID(ctx, postID, userID)
}

// RecordUnlike removes the user's like. Unliking a post that was never liked
// fails with NotLiked and changes nothing. No notification is produced.
func (s *EngagementService) RecordUnlike(ctx context.Context, postID, userID uint) (*models.Post, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required to unlike a post")
	}

	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return nil, err
	}
	middleware.EngagementEvents.WithLabelValues("unlike").Inc()

	return s.postRepo.GetByID(ctx, postID, userID)
}

// RecordComment creates a comment, appends a comment event, increments the
// post's comment counter and publishes a Commented event.
func (s *EngagementService) RecordComment(ctx context.Context, in CommentInput) (*models.Comment, error) {
	if in.AuthorID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required to comment")
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   text,
		UserID: in.AuthorID,
		PostID: in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	middleware.EngagementEvents.WithLabelValues("comment").Inc()

	s.bus.Publish(ctx, events.Event{
		Kind:        events.Commented,
		ActorID:     in.AuthorID,
		RecipientID: post.UserID,
		PostID:      in.PostID,
		CommentID:   comment.ID,
		OccurredAt:  s.now().UTC(),
	})

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// RecordReply appends an embedded reply to the comment and publishes a
// Replied event addressed to the comment's author. Replies do not affect
// the post's comment counter.
func (s *EngagementService) RecordReply(ctx context.Context, in ReplyInput) (*models.Comment, error) {
	if in.AuthorID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required to reply")
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Reply text is required")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("Reply too long (max 10000 characters)")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.AppendReply(ctx, in.CommentID, models.Reply{
		UserID:    in.AuthorID,
		Text:      text,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	middleware.EngagementEvents.WithLabelValues("reply").Inc()

	s.bus.Publish(ctx, events.Event{
		Kind:        events.Replied,
		ActorID:     in.AuthorID,
		RecipientID: comment.UserID,
		PostID:      comment.PostID,
		CommentID:   comment.ID,
		OccurredAt:  s.now().UTC(),
	})

	return updated, nil
}

// UpdateComment edits a comment's text. Only the author may edit.
func (s *EngagementService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.RequesterID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes a comment and decrements the post's comment counter.
// Only the author may delete.
func (s *EngagementService) DeleteComment(ctx context.Context, commentID, requesterID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != requesterID {
		return models.NewForbiddenError("You can only delete your own comments")
	}

	return s.commentRepo.Delete(ctx, commentID)
}

// RecordShare increments the post's share counter and returns the new value.
func (s *EngagementService) RecordShare(ctx context.Context, postID uint) (int, error) {
	shares, err := s.postRepo.RecordShare(ctx, postID)
	if err != nil {
		return 0, err
	}
	middleware.EngagementEvents.WithLabelValues("share").Inc()
	return shares, nil
}
