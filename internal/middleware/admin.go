package middleware

import (
	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

const capabilityKey = "admin_capability"

// AdminRequired checks the persisted role of the resolved user and stores an
// AdminCapability for the handlers. It must run after ResolveUser.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return errs.ErrUnauthorized
		}

		capability, err := services.NewAdminCapability(user)
		if err != nil {
			return err
		}
		c.Locals(capabilityKey, capability)
		return c.Next()
	}
}

// Capability returns the capability stored by AdminRequired. The zero value
// is rejected by every moderation operation.
func Capability(c *fiber.Ctx) services.AdminCapability {
	capability, _ := c.Locals(capabilityKey).(services.AdminCapability)
	return capability
}
