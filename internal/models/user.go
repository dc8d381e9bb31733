package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the persisted identity behind an external principal.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PublicID     string     `gorm:"size:255;not null;uniqueIndex" json:"public_id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Email        string     `gorm:"size:255;not null" json:"email"`
	Image        string     `gorm:"size:1024" json:"image"`
	Phone        *string    `gorm:"size:20" json:"phone,omitempty"`
	Hostel       *string    `gorm:"size:20" json:"hostel,omitempty"`
	Role         Role       `gorm:"size:20;not null;default:'user'" json:"role"`
	WarningCount int        `gorm:"not null;default:0" json:"warning_count"`
	IsBanned     bool       `gorm:"not null;default:false;index" json:"is_banned"`
	BanReason    *string    `gorm:"size:500" json:"ban_reason,omitempty"`
	BanUntil     *time.Time `json:"ban_until,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BanEnforced reports whether the ban blocks access at now. A temporary ban
// stops being enforced once BanUntil passes, but IsBanned stays set until an
// explicit unban.
func (u *User) BanEnforced(now time.Time) bool {
	if !u.IsBanned {
		return false
	}
	return u.BanUntil == nil || u.BanUntil.After(now)
}

// Affiliation returns the hostel tag or "" when unset.
func (u *User) Affiliation() string {
	if u.Hostel == nil {
		return ""
	}
	return *u.Hostel
}
