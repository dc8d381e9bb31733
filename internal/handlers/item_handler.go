package handlers

import (
	"io"

	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/middleware"
	"github.com/Adarsh-P-A/retrievo-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	items         *services.ItemService
	reports       *services.ReportService
	maxImageBytes int64
}

func NewItemHandler(items *services.ItemService, reports *services.ReportService, maxImageBytes int64) *ItemHandler {
	return &ItemHandler{items: items, reports: reports, maxImageBytes: maxImageBytes}
}

// Create accepts a multipart form with the item fields and an "image" file.
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	img, err := h.readImage(c)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.items.Create(c.UserContext(), middleware.CurrentUser(c), req, img)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// readImage reads at most maxImageBytes+1 bytes so an oversize upload is
// rejected rather than truncated.
func (h *ItemHandler) readImage(c *fiber.Ctx) (*services.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, errs.ErrImageRequired
	}
	if fh.Size > h.maxImageBytes {
		return nil, errs.ErrImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errs.Invalid("image could not be read")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxImageBytes+1))
	if err != nil {
		return nil, errs.Invalid("image could not be read")
	}
	return &services.ImageUpload{Filename: fh.Filename, Data: data}, nil
}

func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.items.Get(c.UserContext(), middleware.Viewer(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List handles GET /api/items?type=&page=&limit=.
func (h *ItemHandler) List(c *fiber.Ctx) error {
	page := services.NewPage(c.QueryInt("page", 1), c.QueryInt("limit", services.DefaultPageSize))

	resp, err := h.items.List(c.UserContext(), middleware.Viewer(c), c.Query("type"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.items.Update(c.UserContext(), middleware.CurrentUser(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.items.Delete(c.UserContext(), middleware.CurrentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Item deleted"})
}

func (h *ItemHandler) Report(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.reports.FileReport(c.UserContext(), middleware.CurrentUser(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
