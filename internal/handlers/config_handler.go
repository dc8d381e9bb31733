package handlers

import (
	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/policy"
	"github.com/Adarsh-P-A/retrievo-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ConfigHandler serves the deployment policy that clients need to render
// forms: categories, visibility scopes and limits.
type ConfigHandler struct {
	policy        *policy.Registry
	maxImageBytes int64
}

func NewConfigHandler(p *policy.Registry, maxImageBytes int64) *ConfigHandler {
	return &ConfigHandler{policy: p, maxImageBytes: maxImageBytes}
}

func (h *ConfigHandler) GetConfig(c *fiber.Ctx) error {
	p := h.policy.Get()

	reasons := make([]string, len(models.ReportReasons))
	for i, r := range models.ReportReasons {
		reasons[i] = string(r)
	}

	return c.JSON(dto.ConfigResponse{
		Categories:          p.Categories,
		VisibilityScopes:    h.policy.Scopes(),
		Affiliations:        p.Affiliations,
		ReportReasons:       reasons,
		MaxImageBytes:       h.maxImageBytes,
		AutoHideThreshold:   services.AutoHideThreshold,
		PermanentBanEnabled: p.PermanentBanEnabled,
	})
}
