package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetAnalytics returns the authenticated author's engagement report (protected)
func (s *Server) GetAnalytics(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	report, err := s.analyticsService.GetPostAnalytics(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}
