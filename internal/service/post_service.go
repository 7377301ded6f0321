package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// PostService handles post authoring and read paths.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// CreatePostInput carries a new post submission.
type CreatePostInput struct {
	UserID   uint
	Title    string
	Content  string
	MediaURL string
	Tags     []string
	Category string
}

// UpdatePostInput carries a post edit. The edit replaces the authored
// fields; counters and timestamps are untouched.
type UpdatePostInput struct {
	PostID      uint
	RequesterID uint
	Title       string
	Content     string
	MediaURL    string
	Tags        []string
	Category    string
}

// NewPostService creates a PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// CreatePost validates and persists a new post.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required to create a post")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	tags := make(models.StringList, 0, len(in.Tags))
	for _, tag := range in.Tags {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}

	post := &models.Post{
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		MediaURL: in.MediaURL,
		UserID:   in.UserID,
		Tags:     tags,
		Category: strings.TrimSpace(in.Category),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// GetPost returns a single post, with the liked flag resolved for the
// requesting user when authenticated.
func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID, currentUserID)
}

// UpdatePost edits a post's authored fields. Only the author may edit.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.RequesterID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	tags := make(models.StringList, 0, len(in.Tags))
	for _, tag := range in.Tags {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Content = in.Content
	post.MediaURL = in.MediaURL
	post.Tags = tags
	post.Category = strings.TrimSpace(in.Category)

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, in.PostID, in.RequesterID)
}

// DeletePost removes a post. Only the author may delete. The post's event
// log rows are kept: historical series survive the post.
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ListPosts returns posts ordered by the given sort key: "new" (default,
// newest first), "likes" or "views" (most-engaged first, the featured
// ordering of the landing page).
func (s *PostService) ListPosts(ctx context.Context, sort string, limit, offset int) ([]*models.Post, error) {
	switch sort {
	case "", repository.SortNew, repository.SortLikes, repository.SortViews:
	default:
		return nil, models.NewValidationError("Sort must be one of: new, likes, views")
	}
	return s.postRepo.List(ctx, sort, limit, offset)
}

// ListByAuthor returns an author's posts, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, authorID, limit, offset)
}

// Search matches posts by title, category or tags, case-insensitively.
func (s *PostService) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.postRepo.Search(ctx, query, limit, offset)
}

// Feed returns the newest posts by authors the user follows.
func (s *PostService) Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required for the feed")
	}
	followed, err := s.userRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(followed) == 0 {
		return []*models.Post{}, nil
	}
	return s.postRepo.ListByAuthors(ctx, followed, limit, offset)
}

// Bookmark saves a post for the user. Bookmarking twice is a silent no-op.
func (s *PostService) Bookmark(ctx context.Context, userID, postID uint) error {
	if userID == 0 {
		return models.NewUnauthorizedError("Authentication required to bookmark")
	}
	_, err := s.postRepo.Bookmark(ctx, userID, postID)
	return err
}

// Unbookmark removes a saved post. Removing a non-existent bookmark is a no-op.
func (s *PostService) Unbookmark(ctx context.Context, userID, postID uint) error {
	if userID == 0 {
		return models.NewUnauthorizedError("Authentication required to unbookmark")
	}
	return s.postRepo.Unbookmark(ctx, userID, postID)
}

// Bookmarks returns the user's saved posts, most recently saved first.
func (s *PostService) Bookmarks(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required to list bookmarks")
	}
	return s.postRepo.ListBookmarked(ctx, userID, limit, offset)
}
