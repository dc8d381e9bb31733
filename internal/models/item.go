package models

import (
	"time"

	"github.com/google/uuid"
)

type ItemKind string

const (
	KindLost  ItemKind = "lost"
	KindFound ItemKind = "found"
)

type HiddenReason string

const (
	HiddenAutoReport HiddenReason = "auto_report_threshold"
	HiddenByAdmin    HiddenReason = "admin_moderation"
)

// VisibilityPublic is the only scope every viewer can read. Other scopes are
// deployment-defined affiliation tags.
const VisibilityPublic = "public"

type ClaimStatus string

const (
	ClaimNone     ClaimStatus = "none"
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
)

// Item is a lost or found posting. Kind is the discriminant.
type Item struct {
	ID           uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind         ItemKind      `gorm:"column:kind;size:10;not null;index" json:"type"`
	Title        string        `gorm:"size:30;not null" json:"title"`
	Description  string        `gorm:"size:280;not null" json:"description"`
	Category     string        `gorm:"size:30;not null" json:"category"`
	Location     string        `gorm:"size:30;not null" json:"location"`
	Date         time.Time     `gorm:"not null" json:"date"`
	Image        string        `gorm:"size:255;not null" json:"-"`
	Visibility   string        `gorm:"size:20;not null;default:'public';index" json:"visibility"`
	IsHidden     bool          `gorm:"not null;default:false" json:"is_hidden"`
	HiddenReason *HiddenReason `gorm:"size:32" json:"hidden_reason,omitempty"`
	CreatedAt    time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Owner        *User         `gorm:"foreignKey:UserID" json:"-"`
}

func (Item) TableName() string {
	return "items"
}

func (i *Item) OwnedBy(userID uuid.UUID) bool {
	return i.UserID == userID
}
