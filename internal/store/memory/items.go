package memory

import (
	"context"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/Adarsh-P-A/retrievo-backend/internal/visibility"
	"github.com/google/uuid"
)

type itemRepo struct{ repos }

func (r itemRepo) Create(ctx context.Context, item *models.Item) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.lock()()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if _, ok := r.s.data.items[item.ID]; ok {
		return errs.ErrConflict
	}
	if _, ok := r.s.data.users[item.UserID]; !ok {
		return errs.Invalid("unknown owner")
	}
	if err := checkHidden(item); err != nil {
		return err
	}
	now := r.s.tick()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	r.s.data.items[item.ID] = *item
	return nil
}

// checkHidden mirrors the chk_items_hidden_reason constraint.
func checkHidden(item *models.Item) error {
	if item.IsHidden != (item.HiddenReason != nil) {
		return errs.Invalid("hidden_reason must be set exactly when the item is hidden")
	}
	return nil
}

func (r itemRepo) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.lock()()

	item, ok := r.s.data.items[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &item, nil
}

func (r itemRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return r.Get(ctx, id)
}

func (r itemRepo) Save(ctx context.Context, item *models.Item) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.lock()()

	if _, ok := r.s.data.items[item.ID]; !ok {
		return errs.ErrNotFound
	}
	if err := checkHidden(item); err != nil {
		return err
	}
	item.UpdatedAt = r.s.tick()
	r.s.data.items[item.ID] = *item
	return nil
}

func (r itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.lock()()

	d := r.s.data
	if _, ok := d.items[id]; !ok {
		return errs.ErrNotFound
	}
	delete(d.items, id)

	for rid, rep := range d.reports {
		if rep.ItemID == id {
			delete(d.reports, rid)
		}
	}
	removed := make(map[uuid.UUID]bool)
	for rid, res := range d.resolutions {
		if res.FoundItemID == id {
			removed[rid] = true
			delete(d.resolutions, rid)
		}
	}
	for nid, n := range d.notifications {
		changed := false
		if n.ItemID != nil && *n.ItemID == id {
			n.ItemID = nil
			changed = true
		}
		if n.ResolutionID != nil && removed[*n.ResolutionID] {
			n.ResolutionID = nil
			changed = true
		}
		if changed {
			d.notifications[nid] = n
		}
	}
	return nil
}

func (r itemRepo) List(ctx context.Context, f store.ItemFilter) ([]models.Item, int64, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, 0, err
	}
	defer r.lock()()

	var rows []models.Item
	for _, item := range r.s.data.items {
		if !visibility.Listable(&item, f.Viewer) {
			continue
		}
		if f.Kind != "" && item.Kind != f.Kind {
			continue
		}
		rows = append(rows, item)
	}
	newestFirst(rows, func(i models.Item) time.Time { return i.CreatedAt })
	return page(rows, f.Limit, f.Offset), int64(len(rows)), nil
}

func (r itemRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Item, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.lock()()

	rows := []models.Item{}
	for _, item := range r.s.data.items {
		if item.UserID == ownerID {
			rows = append(rows, item)
		}
	}
	newestFirst(rows, func(i models.Item) time.Time { return i.CreatedAt })
	return rows, nil
}
