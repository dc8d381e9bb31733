package memory

import (
	"context"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/google/uuid"
)

type reportRepo struct{ repos }

func (r reportRepo) Create(ctx context.Context, rep *models.Report) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.lock()()

	d := r.s.data
	if _, ok := d.items[rep.ItemID]; !ok {
		return errs.ErrNotFound
	}
	for _, existing := range d.reports {
		if existing.UserID == rep.UserID && existing.ItemID == rep.ItemID {
			return errs.ErrDuplicateReport
		}
	}
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	if rep.Status == "" {
		rep.Status = models.ReportPending
	}
	rep.CreatedAt = r.s.tick()
	d.reports[rep.ID] = *rep
	return nil
}

func (r reportRepo) CountPending(ctx context.Context, itemID uuid.UUID) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	defer r.lock()()

	var n int64
	for _, rep := range r.s.data.reports {
		if rep.ItemID == itemID && rep.Status == models.ReportPending {
			n++
		}
	}
	return n, nil
}

func (r reportRepo) MarkReviewed(ctx context.Context, itemID, reviewerID uuid.UUID, at time.Time) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	defer r.lock()()

	var n int64
	for id, rep := range r.s.data.reports {
		if rep.ItemID != itemID || rep.Status != models.ReportPending {
			continue
		}
		reviewer, ts := reviewerID, at
		rep.Status = models.ReportReviewed
		rep.ReviewedBy = &reviewer
		rep.ReviewedAt = &ts
		r.s.data.reports[id] = rep
		n++
	}
	return n, nil
}

func (r reportRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]models.Report, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.lock()()

	rows := []models.Report{}
	for _, rep := range r.s.data.reports {
		if rep.ItemID == itemID {
			rows = append(rows, rep)
		}
	}
	newestFirst(rows, func(r models.Report) time.Time { return r.CreatedAt })
	return rows, nil
}

func (r reportRepo) List(ctx context.Context, f store.ReportFilter) ([]models.Report, int64, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, 0, err
	}
	defer r.lock()()

	var rows []models.Report
	for _, rep := range r.s.data.reports {
		if f.Status != "" && rep.Status != f.Status {
			continue
		}
		rows = append(rows, rep)
	}
	newestFirst(rows, func(r models.Report) time.Time { return r.CreatedAt })
	return page(rows, f.Limit, f.Offset), int64(len(rows)), nil
}
