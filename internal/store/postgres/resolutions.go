package postgres

import (
	"context"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var activeStatuses = []models.ResolutionStatus{models.ResolutionPending, models.ResolutionApproved}

type resolutionRepo struct{ db *gorm.DB }

// Create maps a violation of uq_resolutions_active_item to ErrAlreadyClaimed.
func (r resolutionRepo) Create(ctx context.Context, res *models.Resolution) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(res).Error, errs.ErrAlreadyClaimed)
}

func (r resolutionRepo) Get(ctx context.Context, id uuid.UUID) (*models.Resolution, error) {
	var res models.Resolution
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &res, nil
}

func (r resolutionRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Resolution, error) {
	var res models.Resolution
	if err := forUpdate(r.db.WithContext(ctx)).First(&res, "id = ?", id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &res, nil
}

func (r resolutionRepo) Active(ctx context.Context, itemID uuid.UUID) (*models.Resolution, error) {
	var res models.Resolution
	err := r.db.WithContext(ctx).
		Where("found_item_id = ? AND status IN ?", itemID, activeStatuses).
		First(&res).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	return &res, nil
}

func (r resolutionRepo) ActiveStatuses(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]models.ResolutionStatus, error) {
	out := make(map[uuid.UUID]models.ResolutionStatus)
	if len(itemIDs) == 0 {
		return out, nil
	}

	var rows []models.Resolution
	err := r.db.WithContext(ctx).
		Select("found_item_id", "status").
		Where("found_item_id IN ? AND status IN ?", itemIDs, activeStatuses).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	for _, row := range rows {
		out[row.FoundItemID] = row.Status
	}
	return out, nil
}

func (r resolutionRepo) Save(ctx context.Context, res *models.Resolution) error {
	result := r.db.WithContext(ctx).Model(&models.Resolution{}).Where("id = ?", res.ID).Updates(map[string]interface{}{
		"status":           res.Status,
		"rejection_reason": res.RejectionReason,
		"decided_at":       res.DecidedAt,
	})
	if result.Error != nil {
		return translate(result.Error, errs.ErrAlreadyClaimed)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r resolutionRepo) ListByClaimant(ctx context.Context, claimantID uuid.UUID) ([]models.Resolution, error) {
	var rows []models.Resolution
	err := r.db.WithContext(ctx).
		Where("claimant_id = ?", claimantID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, translate(err, nil)
}

func (r resolutionRepo) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Resolution, error) {
	var rows []models.Resolution
	err := r.db.WithContext(ctx).
		Joins("JOIN items ON items.id = resolutions.found_item_id").
		Where("items.user_id = ?", ownerID).
		Order("resolutions.created_at DESC").
		Find(&rows).Error
	return rows, translate(err, nil)
}

func (r resolutionRepo) List(ctx context.Context, f store.ResolutionFilter) ([]models.Resolution, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Resolution{})
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, translate(err, nil)
	}

	var rows []models.Resolution
	if err := query().Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&rows).Error; err != nil {
		return nil, 0, translate(err, nil)
	}
	return rows, total, nil
}
