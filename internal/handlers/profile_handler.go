package handlers

import (
	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/middleware"
	"github.com/Adarsh-P-A/retrievo-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	return c.JSON(h.profiles.Me(middleware.CurrentUser(c)))
}

func (h *ProfileHandler) MyItems(c *fiber.Ctx) error {
	resp, err := h.profiles.MyItems(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ProfileHandler) SetHostel(c *fiber.Ctx) error {
	var req dto.SetHostelRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.profiles.SetHostel(c.UserContext(), middleware.CurrentUser(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ProfileHandler) SetPhone(c *fiber.Ctx) error {
	var req dto.SetPhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.profiles.SetPhone(c.UserContext(), middleware.CurrentUser(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ProfileHandler) Public(c *fiber.Ctx) error {
	resp, err := h.profiles.PublicProfile(c.UserContext(), middleware.Viewer(c), c.Params("public_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
