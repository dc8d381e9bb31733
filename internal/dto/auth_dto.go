package dto

import (
	"time"

	"github.com/google/uuid"
)

type GoogleSignInRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// UserResponse is the caller's own view of their account.
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	PublicID     string     `json:"public_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Image        string     `json:"image"`
	Phone        *string    `json:"phone"`
	Hostel       *string    `json:"hostel"`
	Role         string     `json:"role"`
	WarningCount int        `json:"warning_count"`
	IsBanned     bool       `json:"is_banned"`
	BanReason    *string    `json:"ban_reason,omitempty"`
	BanUntil     *time.Time `json:"ban_until,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
