package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errorClasses = []struct {
	err      error
	status   int
	fallback string
}{
	{errs.ErrNotFound, fiber.StatusNotFound, "Resource not found"},
	{errs.ErrForbidden, fiber.StatusForbidden, "Forbidden"},
	{errs.ErrConflict, fiber.StatusConflict, "Conflict"},
	{errs.ErrInvalidInput, fiber.StatusBadRequest, "Invalid request"},
	{errs.ErrUnauthorized, fiber.StatusUnauthorized, "Unauthorized"},
	{errs.ErrUnavailable, fiber.StatusServiceUnavailable, "Service temporarily unavailable"},
}

// statusFor maps an error to its HTTP status and the message shown to the
// client. Server-side failures never expose their cause.
func statusFor(err error) (int, string) {
	if errors.Is(err, errs.ErrImageTooLarge) {
		return fiber.StatusRequestEntityTooLarge, clientMessage(err, errs.ErrInvalidInput, "Image too large")
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			return fe.Code, "Internal server error"
		}
		return fe.Code, fe.Message
	}

	for _, class := range errorClasses {
		if !errors.Is(err, class.err) {
			continue
		}
		if class.status >= fiber.StatusInternalServerError {
			return class.status, class.fallback
		}
		return class.status, clientMessage(err, class.err, class.fallback)
	}
	return fiber.StatusInternalServerError, "Internal server error"
}

// clientMessage strips the class prefix from messages like
// "forbidden: account is banned".
func clientMessage(err, class error, fallback string) string {
	msg := err.Error()
	if msg == class.Error() {
		return fallback
	}
	return strings.TrimPrefix(msg, class.Error()+": ")
}

func respondError(c *fiber.Ctx, err error) error {
	code, message := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "request failed",
			"method", c.Method(),
			"path", c.Path(),
			"status", code,
			"error", err.Error(),
		)
	}
	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// ErrorHandler is the fiber error handler. Middleware returns domain errors
// and they are rendered the same way handlers render theirs.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return respondError(c, err)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body",
	})
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, errs.Invalid("%s must be a valid UUID", name)
	}
	return id, nil
}
