package handlers

import (
	"strconv"

	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/middleware"
	"github.com/Adarsh-P-A/retrievo-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ModerationHandler serves the admin panel. Routes are mounted behind
// AdminRequired, which stores the capability read here.
type ModerationHandler struct {
	moderation  *services.ModerationService
	resolutions *services.ResolutionService
}

func NewModerationHandler(moderation *services.ModerationService, resolutions *services.ResolutionService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation, resolutions: resolutions}
}

func (h *ModerationHandler) ModerateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.ModerateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.moderation.ModerateUser(c.UserContext(), middleware.Capability(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ModerationHandler) ModerateItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.ModerateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.moderation.ModerateItem(c.UserContext(), middleware.Capability(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	resp, err := h.moderation.ListReports(c.UserContext(), middleware.Capability(c), c.Query("status", ""), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ModerationHandler) ListClaims(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	resp, err := h.resolutions.ListClaims(c.UserContext(), middleware.Capability(c), c.Query("status", ""), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
