package models

import (
	"time"

	"github.com/google/uuid"
)

type ResolutionStatus string

const (
	ResolutionPending  ResolutionStatus = "pending"
	ResolutionApproved ResolutionStatus = "approved"
	ResolutionRejected ResolutionStatus = "rejected"
)

// Active reports whether the status still governs claim exclusivity.
func (s ResolutionStatus) Active() bool {
	return s == ResolutionPending || s == ResolutionApproved
}

// Resolution is a claim against a found item. At most one active resolution
// exists per item (partial unique index uq_resolutions_active_item).
type Resolution struct {
	ID               uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClaimantID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"claimant_id"`
	FoundItemID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"found_item_id"`
	Status           ResolutionStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ClaimDescription string           `gorm:"size:280;not null" json:"claim_description"`
	RejectionReason  *string          `gorm:"size:280" json:"rejection_reason,omitempty"`
	DecidedAt        *time.Time       `json:"decided_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

func (Resolution) TableName() string {
	return "resolutions"
}
