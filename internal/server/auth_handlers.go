package server

import (
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

const tokenTTL = 24 * time.Hour

// Register creates a new account and returns a signed token.
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(ctx, service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return fail(c, err)
	}

	token, err := middleware.GenerateToken(user.ID, s.config.JWTSecret, tokenTTL)
	if err != nil {
		return fail(c, models.NewStorageError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Login verifies credentials and returns a signed token.
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	token, err := middleware.GenerateToken(user.ID, s.config.JWTSecret, tokenTTL)
	if err != nil {
		return fail(c, models.NewStorageError(err))
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}
