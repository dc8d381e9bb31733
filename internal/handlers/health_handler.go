package handlers

import (
	"context"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(st store.Store) *HealthHandler {
	return &HealthHandler{store: st}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status, dbStatus := "ok", "ok"
	code := fiber.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		status, dbStatus = "degraded", "unhealthy"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
