package memory

import (
	"context"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/google/uuid"
)

type userRepo struct{ repos }

func (r userRepo) Ensure(ctx context.Context, u *models.User) (*models.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.lock()()

	for _, existing := range r.s.data.users {
		if existing.PublicID == u.PublicID {
			out := existing
			return &out, nil
		}
	}

	row := *u
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.Role == "" {
		row.Role = models.RoleUser
	}
	now := r.s.tick()
	row.CreatedAt, row.UpdatedAt = now, now
	r.s.data.users[row.ID] = row
	return &row, nil
}

func (r userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.lock()()

	u, ok := r.s.data.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) GetByPublicID(ctx context.Context, publicID string) (*models.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.lock()()

	for _, u := range r.s.data.users {
		if u.PublicID == publicID {
			out := u
			return &out, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r userRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.GetByID(ctx, id)
}

func (r userRepo) Save(ctx context.Context, u *models.User) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.lock()()

	if _, ok := r.s.data.users[u.ID]; !ok {
		return errs.ErrNotFound
	}
	row := *u
	row.UpdatedAt = r.s.tick()
	r.s.data.users[u.ID] = row
	return nil
}

func (r userRepo) SetHostel(ctx context.Context, id uuid.UUID, hostel string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.lock()()

	u, ok := r.s.data.users[id]
	if !ok {
		return errs.ErrNotFound
	}
	u.Hostel = &hostel
	u.UpdatedAt = r.s.tick()
	r.s.data.users[id] = u
	return nil
}

func (r userRepo) SetPhoneIfEmpty(ctx context.Context, id uuid.UUID, phone string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.lock()()

	u, ok := r.s.data.users[id]
	if !ok {
		return errs.ErrNotFound
	}
	if u.Phone != nil {
		return errs.ErrPhoneAlreadySet
	}
	u.Phone = &phone
	u.UpdatedAt = r.s.tick()
	r.s.data.users[id] = u
	return nil
}
