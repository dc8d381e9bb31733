package memory

import (
	"context"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/google/uuid"
)

type resolutionRepo struct{ repos }

// activeFor enforces the same rule as uq_resolutions_active_item. Caller
// holds the lock.
func (r resolutionRepo) activeFor(itemID uuid.UUID, except uuid.UUID) (models.Resolution, bool) {
	for id, res := range r.s.data.resolutions {
		if id != except && res.FoundItemID == itemID && res.Status.Active() {
			return res, true
		}
	}
	return models.Resolution{}, false
}

func (r resolutionRepo) Create(ctx context.Context, res *models.Resolution) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.lock()()

	if _, ok := r.s.data.items[res.FoundItemID]; !ok {
		return errs.ErrNotFound
	}
	if res.Status == "" {
		res.Status = models.ResolutionPending
	}
	if res.Status.Active() {
		if _, exists := r.activeFor(res.FoundItemID, uuid.Nil); exists {
			return errs.ErrAlreadyClaimed
		}
	}
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	res.CreatedAt = r.s.tick()
	r.s.data.resolutions[res.ID] = *res
	return nil
}

func (r resolutionRepo) Get(ctx context.Context, id uuid.UUID) (*models.Resolution, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.lock()()

	res, ok := r.s.data.resolutions[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &res, nil
}

func (r resolutionRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Resolution, error) {
	return r.Get(ctx, id)
}

func (r resolutionRepo) Active(ctx context.Context, itemID uuid.UUID) (*models.Resolution, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.lock()()

	res, ok := r.activeFor(itemID, uuid.Nil)
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &res, nil
}

func (r resolutionRepo) ActiveStatuses(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]models.ResolutionStatus, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.lock()()

	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	out := make(map[uuid.UUID]models.ResolutionStatus)
	for _, res := range r.s.data.resolutions {
		if wanted[res.FoundItemID] && res.Status.Active() {
			out[res.FoundItemID] = res.Status
		}
	}
	return out, nil
}

func (r resolutionRepo) Save(ctx context.Context, res *models.Resolution) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.lock()()

	if _, ok := r.s.data.resolutions[res.ID]; !ok {
		return errs.ErrNotFound
	}
	if res.Status.Active() {
		if _, exists := r.activeFor(res.FoundItemID, res.ID); exists {
			return errs.ErrAlreadyClaimed
		}
	}
	r.s.data.resolutions[res.ID] = *res
	return nil
}

func (r resolutionRepo) collect(keep func(models.Resolution) bool) []models.Resolution {
	rows := []models.Resolution{}
	for _, res := range r.s.data.resolutions {
		if keep(res) {
			rows = append(rows, res)
		}
	}
	newestFirst(rows, func(r models.Resolution) time.Time { return r.CreatedAt })
	return rows
}

func (r resolutionRepo) ListByClaimant(ctx context.Context, claimantID uuid.UUID) ([]models.Resolution, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.lock()()

	return r.collect(func(res models.Resolution) bool { return res.ClaimantID == claimantID }), nil
}

func (r resolutionRepo) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Resolution, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.lock()()

	return r.collect(func(res models.Resolution) bool {
		item, ok := r.s.data.items[res.FoundItemID]
		return ok && item.UserID == ownerID
	}), nil
}

func (r resolutionRepo) List(ctx context.Context, f store.ResolutionFilter) ([]models.Resolution, int64, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, 0, err
	}
	defer r.lock()()

	rows := r.collect(func(res models.Resolution) bool { return f.Status == "" || res.Status == f.Status })
	return page(rows, f.Limit, f.Offset), int64(len(rows)), nil
}
