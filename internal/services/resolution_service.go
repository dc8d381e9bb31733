package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/Adarsh-P-A/retrievo-backend/internal/validation"
	"github.com/Adarsh-P-A/retrievo-backend/internal/visibility"
	"github.com/google/uuid"
)

// ResolutionService drives claims on found items through
// pending -> approved | rejected.
type ResolutionService struct {
	store    store.Store
	validate *validation.Validator
	filter   *ContentFilter
	now      func() time.Time
}

func NewResolutionService(st store.Store, v *validation.Validator, filter *ContentFilter) *ResolutionService {
	return &ResolutionService{store: st, validate: v, filter: filter, now: time.Now}
}

// Create opens a pending claim on a found item and notifies the owner.
func (s *ResolutionService) Create(ctx context.Context, claimant *models.User, req dto.CreateClaimRequest) (*dto.ResolutionResponse, error) {
	req.ItemID = strings.TrimSpace(req.ItemID)
	req.ClaimDescription = strings.TrimSpace(req.ClaimDescription)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.filter.Screen(req.ClaimDescription); err != nil {
		return nil, err
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, errs.Invalid("item_id must be a valid UUID")
	}

	var res models.Resolution
	err = s.store.InTx(ctx, func(tx store.Repos) error {
		item, err := tx.Items().GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item.IsHidden || !visibility.Visible(item, visibility.ForUser(claimant)) {
			return errs.ErrNotFound
		}
		if item.Kind != models.KindFound {
			return errs.ErrNotClaimable
		}
		if item.OwnedBy(claimant.ID) {
			return errs.ErrSelfClaim
		}

		_, err = tx.Resolutions().Active(ctx, item.ID)
		switch {
		case err == nil:
			return errs.ErrAlreadyClaimed
		case !errors.Is(err, errs.ErrNotFound):
			return err
		}

		res = models.Resolution{
			ID:               uuid.New(),
			ClaimantID:       claimant.ID,
			FoundItemID:      item.ID,
			Status:           models.ResolutionPending,
			ClaimDescription: req.ClaimDescription,
		}
		if err := tx.Resolutions().Create(ctx, &res); err != nil {
			return err
		}
		return notify(ctx, tx, claimCreatedNotice(item, &res))
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "claim created",
		"item_id", itemID.String(),
		"user_id", claimant.ID.String(),
		"resolution_id", res.ID.String(),
	)
	resp := resolutionResponse(&res)
	return &resp, nil
}

// lockPending loads the resolution and its item for update and checks that
// actor owns the item and the claim is still undecided.
func lockPending(ctx context.Context, tx store.Repos, actor *models.User, id uuid.UUID) (*models.Resolution, *models.Item, error) {
	res, err := tx.Resolutions().GetForUpdate(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	item, err := tx.Items().GetForUpdate(ctx, res.FoundItemID)
	if err != nil {
		return nil, nil, err
	}
	if !item.OwnedBy(actor.ID) {
		if res.ClaimantID == actor.ID {
			return nil, nil, errs.ErrNotOwner
		}
		return nil, nil, errs.ErrNotFound
	}
	if res.Status != models.ResolutionPending {
		return nil, nil, errs.ErrAlreadyDecided
	}
	return res, item, nil
}

// Approve accepts a pending claim. The item keeps its owner and stays
// listed; the approved claim keeps blocking further claims.
func (s *ResolutionService) Approve(ctx context.Context, owner *models.User, id uuid.UUID) (*dto.ResolutionResponse, error) {
	var (
		res      *models.Resolution
		claimant *models.User
	)
	err := s.store.InTx(ctx, func(tx store.Repos) error {
		var (
			item *models.Item
			err  error
		)
		res, item, err = lockPending(ctx, tx, owner, id)
		if err != nil {
			return err
		}

		now := s.now()
		res.Status = models.ResolutionApproved
		res.DecidedAt = &now
		if err := tx.Resolutions().Save(ctx, res); err != nil {
			return err
		}
		claimant, err = tx.Users().GetByID(ctx, res.ClaimantID)
		if err != nil {
			return err
		}
		return notify(ctx, tx, claimApprovedNotice(item, res))
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "claim approved", "resolution_id", id.String(), "user_id", owner.ID.String())
	resp := resolutionResponse(res)
	withClaimantContact(&resp, claimant)
	return &resp, nil
}

// Reject declines a pending claim with a reason. The item becomes claimable
// again.
func (s *ResolutionService) Reject(ctx context.Context, owner *models.User, id uuid.UUID, req dto.RejectClaimRequest) (*dto.ResolutionResponse, error) {
	req.RejectionReason = strings.TrimSpace(req.RejectionReason)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var res *models.Resolution
	err := s.store.InTx(ctx, func(tx store.Repos) error {
		var (
			item *models.Item
			err  error
		)
		res, item, err = lockPending(ctx, tx, owner, id)
		if err != nil {
			return err
		}

		now := s.now()
		res.Status = models.ResolutionRejected
		res.RejectionReason = &req.RejectionReason
		res.DecidedAt = &now
		if err := tx.Resolutions().Save(ctx, res); err != nil {
			return err
		}
		return notify(ctx, tx, claimRejectedNotice(item, res, req.RejectionReason))
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "claim rejected", "resolution_id", id.String(), "user_id", owner.ID.String())
	resp := resolutionResponse(res)
	return &resp, nil
}

// Get returns a resolution to its claimant, the item owner or an admin.
// Anyone else gets ErrNotFound.
func (s *ResolutionService) Get(ctx context.Context, viewer *models.User, id uuid.UUID) (*dto.ResolutionResponse, error) {
	res, err := s.store.Resolutions().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item, err := s.store.Items().Get(ctx, res.FoundItemID)
	if err != nil {
		return nil, err
	}

	isOwner := item.OwnedBy(viewer.ID)
	if !isOwner && res.ClaimantID != viewer.ID && !viewer.IsAdmin() {
		return nil, errs.ErrNotFound
	}

	resp := resolutionResponse(res)
	if isOwner && res.Status == models.ResolutionApproved {
		claimant, err := s.store.Users().GetByID(ctx, res.ClaimantID)
		if err != nil {
			return nil, err
		}
		withClaimantContact(&resp, claimant)
	}
	return &resp, nil
}

// ListIncoming returns claims on items owned by owner.
func (s *ResolutionService) ListIncoming(ctx context.Context, owner *models.User) (*dto.ResolutionListResponse, error) {
	rows, err := s.store.Resolutions().ListForOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ResolutionResponse, 0, len(rows))
	for i := range rows {
		resp := resolutionResponse(&rows[i])
		if rows[i].Status == models.ResolutionApproved {
			claimant, err := s.store.Users().GetByID(ctx, rows[i].ClaimantID)
			if err != nil {
				return nil, err
			}
			withClaimantContact(&resp, claimant)
		}
		out = append(out, resp)
	}
	return &dto.ResolutionListResponse{Resolutions: out, Total: int64(len(out))}, nil
}

// ListMine returns the claims filed by claimant.
func (s *ResolutionService) ListMine(ctx context.Context, claimant *models.User) (*dto.ResolutionListResponse, error) {
	rows, err := s.store.Resolutions().ListByClaimant(ctx, claimant.ID)
	if err != nil {
		return nil, err
	}
	return resolutionList(rows, int64(len(rows))), nil
}

// ListClaims is the admin view over every claim, optionally by status.
func (s *ResolutionService) ListClaims(ctx context.Context, capability AdminCapability, status string, limit, offset int) (*dto.ResolutionListResponse, error) {
	if err := capability.check(); err != nil {
		return nil, err
	}
	switch models.ResolutionStatus(status) {
	case "", models.ResolutionPending, models.ResolutionApproved, models.ResolutionRejected:
	default:
		return nil, errs.Invalid("status must be pending, approved or rejected")
	}
	limit, offset = clampWindow(limit, offset)

	rows, total, err := s.store.Resolutions().List(ctx, store.ResolutionFilter{
		Status: models.ResolutionStatus(status),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return resolutionList(rows, total), nil
}

func resolutionList(rows []models.Resolution, total int64) *dto.ResolutionListResponse {
	out := make([]dto.ResolutionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, resolutionResponse(&rows[i]))
	}
	return &dto.ResolutionListResponse{Resolutions: out, Total: total}
}

func withClaimantContact(resp *dto.ResolutionResponse, claimant *models.User) {
	if claimant == nil {
		return
	}
	resp.ClaimantName = claimant.Name
	resp.ClaimantEmail = claimant.Email
	resp.ClaimantPhone = claimant.Phone
}

// clampWindow normalizes limit/offset pairs used by the admin queues.
func clampWindow(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
