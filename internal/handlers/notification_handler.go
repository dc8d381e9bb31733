package handlers

import (
	"github.com/Adarsh-P-A/retrievo-backend/internal/middleware"
	"github.com/Adarsh-P-A/retrievo-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	page := services.NewPage(c.QueryInt("page", 1), c.QueryInt("limit", services.DefaultPageSize))

	resp, err := h.notifications.List(c.UserContext(), middleware.CurrentUser(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.notifications.MarkRead(c.UserContext(), middleware.CurrentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.notifications.MarkAllRead(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read", "updated": n})
}
