package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications returns the user's notifications, most recent first (protected)
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	notifications, err := s.notificationService.ListForUser(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(notifications)
}

// GetUnreadCount returns the number of unread notifications (protected)
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	count, err := s.notificationService.UnreadCount(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

// MarkNotificationRead marks a single notification as read (protected)
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	ctx := c.UserContext()

	notificationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notificationService.MarkRead(ctx, notificationID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllNotificationsRead marks every unread notification as read (protected)
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	updated, err := s.notificationService.MarkAllRead(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"marked_read": updated})
}
