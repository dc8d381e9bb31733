package postgres

import (
	"context"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/Adarsh-P-A/retrievo-backend/internal/visibility"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type itemRepo struct{ db *gorm.DB }

func (r itemRepo) Create(ctx context.Context, item *models.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Omit("Owner").Create(item).Error, nil)
}

func (r itemRepo) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &item, nil
}

func (r itemRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := forUpdate(r.db.WithContext(ctx)).First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &item, nil
}

func (r itemRepo) Save(ctx context.Context, item *models.Item) error {
	res := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"title":         item.Title,
		"description":   item.Description,
		"category":      item.Category,
		"location":      item.Location,
		"date":          item.Date,
		"visibility":    item.Visibility,
		"is_hidden":     item.IsHidden,
		"hidden_reason": item.HiddenReason,
	})
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete relies on the FK actions declared in the migrations: reports and
// resolutions cascade, notification back-references are set to NULL.
func (r itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r itemRepo) listQuery(ctx context.Context, f store.ItemFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Item{}).Scopes(visibility.ForViewer(f.Viewer))
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	return q
}

func (r itemRepo) List(ctx context.Context, f store.ItemFilter) ([]models.Item, int64, error) {
	var total int64
	if err := r.listQuery(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, translate(err, nil)
	}

	var items []models.Item
	err := r.listQuery(ctx, f).
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, translate(err, nil)
	}
	return items, total, nil
}

func (r itemRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err, nil)
	}
	return items, nil
}
