package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateClaimRequest struct {
	ItemID           string `json:"item_id" validate:"required,uuid"`
	ClaimDescription string `json:"claim_description" validate:"required,min=20,max=280"`
}

type RejectClaimRequest struct {
	RejectionReason string `json:"rejection_reason" validate:"required,min=20,max=280"`
}

type ResolutionResponse struct {
	ID               uuid.UUID  `json:"id"`
	FoundItemID      uuid.UUID  `json:"found_item_id"`
	ClaimantID       uuid.UUID  `json:"claimant_id"`
	Status           string     `json:"status"`
	ClaimDescription string     `json:"claim_description"`
	RejectionReason  *string    `json:"rejection_reason,omitempty"`
	DecidedAt        *time.Time `json:"decided_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	// Claimant contact details are only shown to the item owner once the
	// claim is approved.
	ClaimantName  string  `json:"claimant_name,omitempty"`
	ClaimantEmail string  `json:"claimant_email,omitempty"`
	ClaimantPhone *string `json:"claimant_phone,omitempty"`
}

type ResolutionListResponse struct {
	Resolutions []ResolutionResponse `json:"resolutions"`
	Total       int64                `json:"total"`
}
