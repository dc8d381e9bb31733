package handlers

import (
	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/middleware"
	"github.com/Adarsh-P-A/retrievo-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ResolutionHandler struct {
	resolutions *services.ResolutionService
}

func NewResolutionHandler(resolutions *services.ResolutionService) *ResolutionHandler {
	return &ResolutionHandler{resolutions: resolutions}
}

func (h *ResolutionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.resolutions.Create(c.UserContext(), middleware.CurrentUser(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *ResolutionHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.resolutions.Get(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ResolutionHandler) Approve(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.resolutions.Approve(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ResolutionHandler) Reject(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.RejectClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.resolutions.Reject(c.UserContext(), middleware.CurrentUser(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListIncoming returns claims on the caller's items.
func (h *ResolutionHandler) ListIncoming(c *fiber.Ctx) error {
	resp, err := h.resolutions.ListIncoming(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListMine returns claims the caller filed.
func (h *ResolutionHandler) ListMine(c *fiber.Ctx) error {
	resp, err := h.resolutions.ListMine(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
