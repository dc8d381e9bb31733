package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateItemRequest is the text part of the multipart create form.
type CreateItemRequest struct {
	Title       string `form:"title" json:"title" validate:"required,min=3,max=30"`
	Description string `form:"description" json:"description" validate:"required,min=20,max=280"`
	Category    string `form:"category" json:"category" validate:"required,category"`
	Location    string `form:"location" json:"location" validate:"required,min=3,max=30"`
	Type        string `form:"type" json:"type" validate:"required,oneof=lost found"`
	Visibility  string `form:"visibility" json:"visibility" validate:"required,visibility"`
	Date        string `form:"date" json:"date" validate:"required"`
}

// UpdateItemRequest is a partial update; nil fields are left untouched.
type UpdateItemRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=30"`
	Description *string `json:"description" validate:"omitempty,min=20,max=280"`
	Category    *string `json:"category" validate:"omitempty,category"`
	Location    *string `json:"location" validate:"omitempty,min=3,max=30"`
	Visibility  *string `json:"visibility" validate:"omitempty,visibility"`
	Date        *string `json:"date"`
}

type ItemResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Location     string    `json:"location"`
	Date         time.Time `json:"date"`
	ImageURL     string    `json:"image_url"`
	Visibility   string    `json:"visibility"`
	IsHidden     bool      `json:"is_hidden"`
	HiddenReason *string   `json:"hidden_reason,omitempty"`
	ClaimStatus  string    `json:"claim_status"`
	IsOwner      bool      `json:"is_owner"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ItemListResponse struct {
	Items   []ItemResponse `json:"items"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	Total   int64          `json:"total"`
	HasMore bool           `json:"has_more"`
}

type ReportRequest struct {
	Reason string `json:"reason" validate:"required,oneof=spam inappropriate harassment fake other"`
}

type ReportResponse struct {
	ID         uuid.UUID  `json:"id"`
	ItemID     uuid.UUID  `json:"item_id"`
	ReporterID uuid.UUID  `json:"reporter_id"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	ReviewedBy *uuid.UUID `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	// ItemHidden is true when this report pushed the item over the
	// auto-hide threshold or it was already hidden.
	ItemHidden bool `json:"item_hidden"`
}
