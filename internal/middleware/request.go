package middleware

import (
	"github.com/Adarsh-P-A/retrievo-backend/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// RequestContext copies the request id set by the requestid middleware into
// the user context, so service logs and the database log sink carry it.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals("requestid").(string); ok && id != "" {
			c.SetUserContext(logging.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}
