package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportReason string

const (
	ReasonSpam          ReportReason = "spam"
	ReasonInappropriate ReportReason = "inappropriate"
	ReasonHarassment    ReportReason = "harassment"
	ReasonFake          ReportReason = "fake"
	ReasonOther         ReportReason = "other"
)

var ReportReasons = []ReportReason{ReasonSpam, ReasonInappropriate, ReasonHarassment, ReasonFake, ReasonOther}

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
)

// Report is one user's flag on one item. (user_id, item_id) is unique.
type Report struct {
	ID         uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_user_item_report,priority:1" json:"reporter_id"`
	ItemID     uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:uq_user_item_report,priority:2" json:"item_id"`
	Reason     ReportReason `gorm:"size:20;not null;index" json:"reason"`
	Status     ReportStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReviewedBy *uuid.UUID   `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time   `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}
