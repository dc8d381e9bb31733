// Package store defines the transactional persistence contract used by the
// services. Implementations live in store/postgres and store/memory.
package store

import (
	"context"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/visibility"
	"github.com/google/uuid"
)

// UserRepository provides access to persisted identities.
type UserRepository interface {
	// Ensure inserts u unless a user with the same PublicID exists, then
	// returns the stored row. Safe under concurrent first logins.
	Ensure(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByPublicID(ctx context.Context, publicID string) (*models.User, error)
	// GetForUpdate loads and row-locks a user inside a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.User, error)
	// Save writes the role and moderation fields of u.
	Save(ctx context.Context, u *models.User) error
	SetHostel(ctx context.Context, id uuid.UUID, hostel string) error
	// SetPhoneIfEmpty stores phone only when none is set yet.
	SetPhoneIfEmpty(ctx context.Context, id uuid.UUID, phone string) error
}

// ItemFilter selects a page of listable items.
type ItemFilter struct {
	Viewer visibility.Viewer
	Kind   models.ItemKind
	Limit  int
	Offset int
}

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	Get(ctx context.Context, id uuid.UUID) (*models.Item, error)
	// GetForUpdate loads and row-locks an item inside a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Item, error)
	Save(ctx context.Context, item *models.Item) error
	// Delete removes the item; reports and resolutions cascade and
	// notifications lose their back-references.
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns non-hidden items allowed for the viewer, newest first.
	List(ctx context.Context, f ItemFilter) ([]models.Item, int64, error)
	// ListByOwner returns every item of the owner, hidden ones included.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Item, error)
}

type ReportFilter struct {
	Status models.ReportStatus
	Limit  int
	Offset int
}

type ReportRepository interface {
	// Create fails with errs.ErrDuplicateReport when the reporter already
	// reported the item.
	Create(ctx context.Context, r *models.Report) error
	CountPending(ctx context.Context, itemID uuid.UUID) (int64, error)
	// MarkReviewed moves every pending report of the item to reviewed.
	MarkReviewed(ctx context.Context, itemID, reviewerID uuid.UUID, at time.Time) (int64, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]models.Report, error)
	List(ctx context.Context, f ReportFilter) ([]models.Report, int64, error)
}

type ResolutionFilter struct {
	Status models.ResolutionStatus
	Limit  int
	Offset int
}

type ResolutionRepository interface {
	// Create fails with errs.ErrAlreadyClaimed when the item already has an
	// active resolution.
	Create(ctx context.Context, r *models.Resolution) error
	Get(ctx context.Context, id uuid.UUID) (*models.Resolution, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Resolution, error)
	// Active returns the pending or approved resolution of the item.
	Active(ctx context.Context, itemID uuid.UUID) (*models.Resolution, error)
	// ActiveStatuses maps each item id with an active resolution to its status.
	ActiveStatuses(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]models.ResolutionStatus, error)
	Save(ctx context.Context, r *models.Resolution) error
	ListByClaimant(ctx context.Context, claimantID uuid.UUID) ([]models.Resolution, error)
	// ListForOwner returns resolutions on items owned by ownerID.
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Resolution, error)
	List(ctx context.Context, f ResolutionFilter) ([]models.Resolution, int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	// MarkRead fails with errs.ErrNotFound unless userID is the recipient.
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, t *models.RefreshToken) error
	// GetActive returns the unrevoked token with the given hash.
	GetActive(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	RevokeByHash(ctx context.Context, tokenHash string) error
}

// Repos groups the repositories bound to one connection or transaction.
type Repos interface {
	Users() UserRepository
	Items() ItemRepository
	Reports() ReportRepository
	Resolutions() ResolutionRepository
	Notifications() NotificationRepository
	RefreshTokens() RefreshTokenRepository
}

// Store is the relational store. InTx commits when fn returns nil and rolls
// back otherwise, so a failed operation leaves no partial state.
type Store interface {
	Repos
	InTx(ctx context.Context, fn func(tx Repos) error) error
	Ping(ctx context.Context) error
}
