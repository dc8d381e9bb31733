package postgres

import (
	"context"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepo struct{ db *gorm.DB }

func (r userRepo) Ensure(ctx context.Context, u *models.User) (*models.User, error) {
	db := r.db.WithContext(ctx)
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "public_id"}},
		DoNothing: true,
	}).Create(u).Error
	if err != nil {
		return nil, translate(err, nil)
	}

	var out models.User
	if err := db.First(&out, "public_id = ?", u.PublicID).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &out, nil
}

func (r userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &u, nil
}

func (r userRepo) GetByPublicID(ctx context.Context, publicID string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "public_id = ?", publicID).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &u, nil
}

func (r userRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := forUpdate(r.db.WithContext(ctx)).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &u, nil
}

func (r userRepo) Save(ctx context.Context, u *models.User) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"role":          u.Role,
		"warning_count": u.WarningCount,
		"is_banned":     u.IsBanned,
		"ban_reason":    u.BanReason,
		"ban_until":     u.BanUntil,
	})
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r userRepo) SetHostel(ctx context.Context, id uuid.UUID, hostel string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("hostel", hostel)
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// SetPhoneIfEmpty relies on the conditional UPDATE so two racing requests
// cannot both set the phone.
func (r userRepo) SetPhoneIfEmpty(ctx context.Context, id uuid.UUID, phone string) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&models.User{}).Where("id = ? AND phone IS NULL", id).Update("phone", phone)
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return errs.ErrPhoneAlreadySet
	}
	return nil
}
