package dto

import (
	"time"

	"github.com/google/uuid"
)

type SetHostelRequest struct {
	Hostel string `json:"hostel" validate:"required,affiliation"`
}

type SetPhoneRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

type MyItemsResponse struct {
	Lost  []ItemResponse `json:"lost"`
	Found []ItemResponse `json:"found"`
}

type PublicProfileResponse struct {
	PublicID  string         `json:"public_id"`
	Name      string         `json:"name"`
	Image     string         `json:"image"`
	Hostel    *string        `json:"hostel,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Items     []ItemResponse `json:"items"`
}

type NotificationResponse struct {
	ID           uuid.UUID  `json:"id"`
	Type         string     `json:"type"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	ItemID       *uuid.UUID `json:"item_id,omitempty"`
	ResolutionID *uuid.UUID `json:"resolution_id,omitempty"`
	IsRead       bool       `json:"is_read"`
	CreatedAt    time.Time  `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Unread        int64                  `json:"unread"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	Total         int64                  `json:"total"`
	HasMore       bool                   `json:"has_more"`
}

type ConfigResponse struct {
	Categories          []string `json:"categories"`
	VisibilityScopes    []string `json:"visibility_scopes"`
	Affiliations        []string `json:"affiliations"`
	ReportReasons       []string `json:"report_reasons"`
	MaxImageBytes       int64    `json:"max_image_bytes"`
	AutoHideThreshold   int      `json:"auto_hide_threshold"`
	PermanentBanEnabled bool     `json:"permanent_ban_enabled"`
}
