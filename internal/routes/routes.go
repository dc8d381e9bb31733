package routes

import (
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/config"
	"github.com/Adarsh-P-A/retrievo-backend/internal/handlers"
	"github.com/Adarsh-P-A/retrievo-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Health        *handlers.HealthHandler
	Config        *handlers.ConfigHandler
	Legal         *handlers.LegalHandler
	Items         *handlers.ItemHandler
	Resolutions   *handlers.ResolutionHandler
	Moderation    *handlers.ModerationHandler
	Profiles      *handlers.ProfileHandler
	Notifications *handlers.NotificationHandler
}

// Setup mounts every route. storage backs the rate limiters; nil keeps the
// counters in process memory.
func Setup(app *fiber.App, cfg *config.Config, storage fiber.Storage, resolver middleware.Resolver, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		Storage:           storage,
	}))

	api.Get("/health", h.Health.Check)
	api.Get("/config", h.Config.GetConfig)
	api.Get("/legal/privacy", h.Legal.PrivacyPolicy)
	api.Get("/legal/terms", h.Legal.TermsOfService)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return "auth:" + c.IP() },
		Storage:           storage,
	}))
	auth.Post("/google", h.Auth.GoogleSignIn)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", h.Auth.Logout)

	// Public reads resolve the caller when a valid token is sent.
	optional := []fiber.Handler{middleware.OptionalJWT(cfg), middleware.ResolveOptionalUser(resolver)}
	protected := []fiber.Handler{middleware.JWTProtected(cfg), middleware.ResolveUser(resolver)}

	with := func(chain []fiber.Handler, handler fiber.Handler) []fiber.Handler {
		out := make([]fiber.Handler, 0, len(chain)+1)
		return append(append(out, chain...), handler)
	}

	items := api.Group("/items")
	items.Get("/", with(optional, h.Items.List)...)
	items.Get("/:id", with(optional, h.Items.Get)...)
	items.Post("/", with(protected, h.Items.Create)...)
	items.Patch("/:id", with(protected, h.Items.Update)...)
	items.Delete("/:id", with(protected, h.Items.Delete)...)
	items.Post("/:id/report", with(protected, h.Items.Report)...)

	claims := api.Group("/resolutions", protected...)
	claims.Post("/", h.Resolutions.Create)
	claims.Get("/incoming", h.Resolutions.ListIncoming)
	claims.Get("/mine", h.Resolutions.ListMine)
	claims.Get("/:id", h.Resolutions.Get)
	claims.Post("/:id/approve", h.Resolutions.Approve)
	claims.Post("/:id/reject", h.Resolutions.Reject)

	api.Get("/profile/me", with(protected, h.Profiles.Me)...)
	api.Get("/profile/items", with(protected, h.Profiles.MyItems)...)
	api.Post("/profile/hostel", with(protected, h.Profiles.SetHostel)...)
	api.Post("/profile/phone", with(protected, h.Profiles.SetPhone)...)
	api.Get("/profile/:public_id", with(optional, h.Profiles.Public)...)

	notifications := api.Group("/notifications", protected...)
	notifications.Get("/", h.Notifications.List)
	notifications.Post("/read-all", h.Notifications.MarkAllRead)
	notifications.Post("/:id/read", h.Notifications.MarkRead)

	// Admin moderation panel (protected + admin required)
	admin := api.Group("/admin", with(protected, middleware.AdminRequired())...)
	admin.Post("/users/:id/moderate", h.Moderation.ModerateUser)
	admin.Post("/items/:id/moderate", h.Moderation.ModerateItem)
	admin.Get("/reports", h.Moderation.ListReports)
	admin.Get("/claims", h.Moderation.ListClaims)
}
