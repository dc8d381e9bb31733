package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/principal"
	"github.com/Adarsh-P-A/retrievo-backend/internal/visibility"
	"github.com/gofiber/fiber/v2"
)

const userKey = "current_user"

// Resolver maps a verified principal to the persisted user.
type Resolver interface {
	Resolve(ctx context.Context, p principal.Principal) (*models.User, error)
}

// ResolveUser loads the persisted user behind the verified token. It must
// run after JWTProtected. Banned users are rejected here.
func ResolveUser(r Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal.FromContext(c)
		if err != nil {
			return errs.ErrUnauthorized
		}

		user, err := r.Resolve(c.UserContext(), p)
		if err != nil {
			return err
		}
		c.Locals(userKey, user)
		return c.Next()
	}
}

// ResolveOptionalUser is ResolveUser for public routes: without a valid
// token, or for a banned user, the request continues anonymously.
func ResolveOptionalUser(r Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal.FromContext(c)
		if err != nil {
			return c.Next()
		}

		user, err := r.Resolve(c.UserContext(), p)
		switch {
		case err == nil:
			c.Locals(userKey, user)
		case errors.Is(err, errs.ErrForbidden), errors.Is(err, errs.ErrUnauthorized):
			slog.DebugContext(c.UserContext(), "continuing anonymously", "error", err)
		default:
			return err
		}
		return c.Next()
	}
}

// CurrentUser returns the resolved user or nil on anonymous requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

// Viewer builds the visibility viewer for the request.
func Viewer(c *fiber.Ctx) visibility.Viewer {
	if user := CurrentUser(c); user != nil {
		return visibility.ForUser(user)
	}
	return visibility.Anonymous()
}
