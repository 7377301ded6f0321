package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers returns a paginated user directory (public)
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := parsePagination(c, 20)

	users, err := s.userService.ListUsers(ctx, p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

// UpdateMyProfile edits the authenticated user's bio and avatar (protected)
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Bio    string `json:"bio"`
		Avatar string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID: userID,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile returns a user with follower counts (public)
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.GetProfile(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

// FollowUser follows another user (protected)
func (s *Server) FollowUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	followerID := c.Locals("userID").(uint)

	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.Follow(ctx, followerID, followeeID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnfollowUser removes a follow edge (protected)
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	followerID := c.Locals("userID").(uint)

	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.Unfollow(ctx, followerID, followeeID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
