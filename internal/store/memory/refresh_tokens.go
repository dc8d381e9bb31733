package memory

import (
	"context"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/google/uuid"
)

type refreshTokenRepo struct{ repos }

func (r refreshTokenRepo) Create(ctx context.Context, t *models.RefreshToken) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.lock()()

	for _, existing := range r.s.data.refreshTokens {
		if existing.TokenHash == t.TokenHash {
			return errs.ErrConflict
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = r.s.tick()
	r.s.data.refreshTokens[t.ID] = *t
	return nil
}

func (r refreshTokenRepo) GetActive(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.lock()()

	for _, t := range r.s.data.refreshTokens {
		if t.TokenHash == tokenHash && !t.Revoked {
			out := t
			return &out, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r refreshTokenRepo) Revoke(ctx context.Context, id uuid.UUID) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.lock()()

	t, ok := r.s.data.refreshTokens[id]
	if !ok {
		return errs.ErrNotFound
	}
	t.Revoked = true
	r.s.data.refreshTokens[id] = t
	return nil
}

func (r refreshTokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.lock()()

	for id, t := range r.s.data.refreshTokens {
		if t.TokenHash == tokenHash {
			t.Revoked = true
			r.s.data.refreshTokens[id] = t
		}
	}
	return nil
}
