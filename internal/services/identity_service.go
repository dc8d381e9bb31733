package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/config"
	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/principal"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = fmt.Errorf("%w: invalid or expired refresh token", errs.ErrUnauthorized)

// IdentityService maps principals to persisted users and issues the API's
// own access and refresh tokens.
type IdentityService struct {
	store       store.Store
	cfg         *config.Config
	verifier    IDTokenVerifier
	adminEmails []string
	now         func() time.Time
}

func NewIdentityService(st store.Store, cfg *config.Config, verifier IDTokenVerifier) *IdentityService {
	return &IdentityService{
		store:       st,
		cfg:         cfg,
		verifier:    verifier,
		adminEmails: cfg.AdminEmailList(),
		now:         time.Now,
	}
}

// Resolve looks up or creates the user for p and rejects enforced bans.
// Creation is race-safe: the insert is a no-op when another request created
// the row first.
func (s *IdentityService) Resolve(ctx context.Context, p principal.Principal) (*models.User, error) {
	if p.Subject == "" {
		return nil, errs.ErrUnauthorized
	}

	user, err := s.store.Users().GetByPublicID(ctx, p.Subject)
	if errors.Is(err, errs.ErrNotFound) {
		user, err = s.store.Users().Ensure(ctx, s.newUser(p))
		if err == nil {
			slog.InfoContext(ctx, "user resolved", "user_id", user.ID.String(), "action", "first_login")
		}
	}
	if err != nil {
		return nil, err
	}

	if user.BanEnforced(s.now()) {
		return nil, errs.ErrBanned
	}
	return user, nil
}

func (s *IdentityService) newUser(p principal.Principal) *models.User {
	name := p.Name
	if name == "" {
		name = strings.Split(p.Email, "@")[0]
	}
	role := models.RoleUser
	if s.isAdminEmail(p.Email) {
		role = models.RoleAdmin
	}
	return &models.User{
		ID:       uuid.New(),
		PublicID: p.Subject,
		Name:     name,
		Email:    p.Email,
		Image:    p.Image,
		Role:     role,
	}
}

func (s *IdentityService) isAdminEmail(email string) bool {
	return email != "" && slices.Contains(s.adminEmails, strings.ToLower(email))
}

// SignInWithGoogle verifies a Google ID token and returns a fresh token pair.
func (s *IdentityService) SignInWithGoogle(ctx context.Context, req dto.GoogleSignInRequest) (*dto.AuthResponse, error) {
	if req.IDToken == "" {
		return nil, errs.Invalid("id_token is required")
	}

	claims, err := s.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		slog.WarnContext(ctx, "google token verification failed", "error", err)
		return nil, fmt.Errorf("%w: invalid google id token", errs.ErrUnauthorized)
	}

	user, err := s.Resolve(ctx, principal.Principal{
		Subject: claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Image:   claims.Picture,
	})
	if err != nil {
		return nil, err
	}

	var resp *dto.AuthResponse
	err = s.store.InTx(ctx, func(tx store.Repos) error {
		var err error
		resp, err = s.generateTokenPair(ctx, tx, user)
		return err
	})
	return resp, err
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (s *IdentityService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var (
		resp    *dto.AuthResponse
		expired bool
	)
	err := s.store.InTx(ctx, func(tx store.Repos) error {
		stored, err := tx.RefreshTokens().GetActive(ctx, tokenHash)
		if errors.Is(err, errs.ErrNotFound) {
			return ErrInvalidToken
		}
		if err != nil {
			return err
		}

		if err := tx.RefreshTokens().Revoke(ctx, stored.ID); err != nil {
			return err
		}
		if s.now().After(stored.ExpiresAt) {
			expired = true
			return nil
		}

		user, err := tx.Users().GetByID(ctx, stored.UserID)
		if err != nil {
			return err
		}
		if user.BanEnforced(s.now()) {
			return errs.ErrBanned
		}

		resp, err = s.generateTokenPair(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrInvalidToken
	}
	return resp, nil
}

func (s *IdentityService) Logout(ctx context.Context, req dto.LogoutRequest) error {
	return s.store.RefreshTokens().RevokeByHash(ctx, hashToken(req.RefreshToken))
}

func (s *IdentityService) generateTokenPair(ctx context.Context, tx store.Repos, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, tx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
		User:         UserResponse(user),
	}, nil
}

// generateAccessToken signs the claims read back by principal.FromClaims.
func (s *IdentityService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":     user.PublicID,
		"name":    user.Name,
		"email":   user.Email,
		"picture": user.Image,
		"role":    string(user.Role),
		"hostel":  user.Affiliation(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *IdentityService) generateRefreshToken(ctx context.Context, tx store.Repos, user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: s.now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := tx.RefreshTokens().Create(ctx, &record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
