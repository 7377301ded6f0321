package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost creates a new post (protected)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		MediaURL string   `json:"media_url"`
		Tags     []string `json:"tags"`
		Category string   `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		MediaURL: req.MediaURL,
		Tags:     req.Tags,
		Category: req.Category,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts returns posts, newest first by default. ?sort=likes|views
// surfaces the most-engaged posts first (public)
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := parsePagination(c, 20)

	posts, err := s.postService.ListPosts(ctx, c.Query("sort"), p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(posts)
}

// UpdatePost edits a post's authored fields (protected, author only)
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		MediaURL string   `json:"media_url"`
		Tags     []string `json:"tags"`
		Category string   `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		PostID:      postID,
		RequesterID: userID,
		Title:       req.Title,
		Content:     req.Content,
		MediaURL:    req.MediaURL,
		Tags:        req.Tags,
		Category:    req.Category,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post)
}

// DeletePost removes a post (protected, author only)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, postID, userID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BookmarkPost saves a post for the user (protected)
func (s *Server) BookmarkPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Bookmark(ctx, userID, postID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnbookmarkPost removes a saved post (protected)
func (s *Server) UnbookmarkPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Unbookmark(ctx, userID, postID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetBookmarks returns the user's saved posts (protected)
func (s *Server) GetBookmarks(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	posts, err := s.postService.Bookmarks(ctx, userID, p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(posts)
}

// GetPost returns a single post (public). Fetching a post does not count as a
// view; clients report views explicitly through RecordView.
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, postID, currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post)
}

// SearchPosts matches posts by title, category or tags (public)
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := parsePagination(c, 20)

	posts, err := s.postService.Search(ctx, c.Query("q"), p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(posts)
}

// GetFeed returns the newest posts by authors the user follows (protected)
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	posts, err := s.postService.Feed(ctx, userID, p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(posts)
}

// GetUserPosts returns an author's posts (public)
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	posts, err := s.postService.ListByAuthor(ctx, authorID, p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(posts)
}
