package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RecordView counts one view of a post (public). Anonymous views count;
// repeated views by the same reader count again.
func (s *Server) RecordView(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.engagementService.RecordView(ctx, postID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LikePost likes a post on behalf of the authenticated user (protected)
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.engagementService.RecordLike(ctx, postID, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post)
}

// UnlikePost removes the authenticated user's like (protected)
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.engagementService.RecordUnlike(ctx, postID, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post)
}

// SharePost counts one share of a post (public)
func (s *Server) SharePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	shares, err := s.engagementService.RecordShare(ctx, postID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"share_count": shares})
}

// CreateComment creates a comment on a post (protected)
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.engagementService.RecordComment(ctx, service.CommentInput{
		PostID:   postID,
		AuthorID: userID,
		Text:     req.Text,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments returns all comments for a post (public)
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(comments)
}

// CreateReply appends a reply to a comment (protected)
func (s *Server) CreateReply(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.engagementService.RecordReply(ctx, service.ReplyInput{
		CommentID: commentID,
		AuthorID:  userID,
		Text:      req.Text,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment edits a comment's text (only owner)
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.engagementService.UpdateComment(ctx, service.UpdateCommentInput{
		CommentID:   commentID,
		RequesterID: userID,
		Text:        req.Text,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment removes a comment (only owner)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.engagementService.DeleteComment(ctx, commentID, userID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
