package services

import (
	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/google/uuid"
)

// AdminCapability proves the holder was an admin when the request was
// resolved. It is built per request from the persisted user, so a demoted
// admin loses access on the next request.
type AdminCapability struct {
	adminID uuid.UUID
}

func NewAdminCapability(u *models.User) (AdminCapability, error) {
	if u == nil || !u.IsAdmin() {
		return AdminCapability{}, errs.ErrNotAdmin
	}
	return AdminCapability{adminID: u.ID}, nil
}

func (c AdminCapability) AdminID() uuid.UUID {
	return c.adminID
}

// check rejects the zero value.
func (c AdminCapability) check() error {
	if c.adminID == uuid.Nil {
		return errs.ErrNotAdmin
	}
	return nil
}
