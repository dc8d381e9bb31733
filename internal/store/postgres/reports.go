package postgres

import (
	"context"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reportRepo struct{ db *gorm.DB }

func (r reportRepo) Create(ctx context.Context, rep *models.Report) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(rep).Error, errs.ErrDuplicateReport)
}

func (r reportRepo) CountPending(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("item_id = ? AND status = ?", itemID, models.ReportPending).
		Count(&n).Error
	return n, translate(err, nil)
}

func (r reportRepo) MarkReviewed(ctx context.Context, itemID, reviewerID uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("item_id = ? AND status = ?", itemID, models.ReportPending).
		Updates(map[string]interface{}{
			"status":      models.ReportReviewed,
			"reviewed_by": reviewerID,
			"reviewed_at": at,
		})
	return res.RowsAffected, translate(res.Error, nil)
}

func (r reportRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).Order("created_at DESC").Find(&reports).Error
	return reports, translate(err, nil)
}

func (r reportRepo) List(ctx context.Context, f store.ReportFilter) ([]models.Report, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Report{})
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, translate(err, nil)
	}

	var reports []models.Report
	if err := query().Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&reports).Error; err != nil {
		return nil, 0, translate(err, nil)
	}
	return reports, total, nil
}
