package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifyClaimCreated  NotificationType = "claim_created"
	NotifyClaimApproved NotificationType = "claim_approved"
	NotifyClaimRejected NotificationType = "claim_rejected"
	NotifySystemNotice  NotificationType = "system_notice"
	NotifyWarningIssued NotificationType = "warning_issued"
)

// Notification is only ever written as a side effect of a domain event.
type Notification struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"-"`
	Type         NotificationType `gorm:"size:30;not null;index" json:"type"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	Message      string           `gorm:"type:text;not null" json:"message"`
	ItemID       *uuid.UUID       `gorm:"type:uuid;index" json:"item_id,omitempty"`
	ResolutionID *uuid.UUID       `gorm:"type:uuid;index" json:"resolution_id,omitempty"`
	IsRead       bool             `gorm:"not null;default:false" json:"is_read"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
