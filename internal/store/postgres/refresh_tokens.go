package postgres

import (
	"context"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type refreshTokenRepo struct{ db *gorm.DB }

func (r refreshTokenRepo) Create(ctx context.Context, t *models.RefreshToken) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(t).Error, nil)
}

func (r refreshTokenRepo) GetActive(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var t models.RefreshToken
	err := forUpdate(r.db.WithContext(ctx)).
		Where("token_hash = ? AND revoked = false", tokenHash).
		First(&t).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	return &t, nil
}

func (r refreshTokenRepo) Revoke(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.RefreshToken{}).Where("id = ?", id).Update("revoked", true)
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r refreshTokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	return translate(r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error, nil)
}
