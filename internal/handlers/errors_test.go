package handlers

import (
	"errors"
	"testing"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"not found", errs.ErrNotFound, fiber.StatusNotFound, "Resource not found"},
		{"banned", errs.ErrBanned, fiber.StatusForbidden, "account is banned"},
		{"item locked", errs.ErrItemLocked, fiber.StatusForbidden, "item has an active claim"},
		{"duplicate report", errs.ErrDuplicateReport, fiber.StatusConflict, "you already reported this item"},
		{"invalid", errs.Invalid("title is too short"), fiber.StatusBadRequest, "title is too short"},
		{"image too large", errs.ErrImageTooLarge, fiber.StatusRequestEntityTooLarge, "image exceeds size limit"},
		{"unauthorized", errs.ErrUnauthorized, fiber.StatusUnauthorized, "Unauthorized"},
		{"unavailable hides cause", errs.Unavailable("db", errors.New("dial tcp: refused")), fiber.StatusServiceUnavailable, "Service temporarily unavailable"},
		{"fiber client error", fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed"), fiber.StatusMethodNotAllowed, "Method Not Allowed"},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, message := statusFor(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.message, message)
		})
	}
}
