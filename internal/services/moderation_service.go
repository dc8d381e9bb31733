package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/blob"
	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/policy"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/Adarsh-P-A/retrievo-backend/internal/validation"
	"github.com/Adarsh-P-A/retrievo-backend/internal/visibility"
	"github.com/google/uuid"
)

const (
	defaultTempBanReason = "Temporary ban by admin"
	defaultPermBanReason = "Permanently banned by admin"
)

// ModerationService applies admin actions to users and items. Every method
// takes an AdminCapability and runs its mutation in one transaction.
type ModerationService struct {
	store    store.Store
	blobs    blob.Store
	policy   *policy.Registry
	validate *validation.Validator
	now      func() time.Time
}

func NewModerationService(st store.Store, blobs blob.Store, p *policy.Registry, v *validation.Validator) *ModerationService {
	return &ModerationService{store: st, blobs: blobs, policy: p, validate: v, now: time.Now}
}

// ModerateUser warns, bans or unbans targetID.
func (s *ModerationService) ModerateUser(ctx context.Context, capability AdminCapability, targetID uuid.UUID, req dto.ModerateUserRequest) (*dto.ModerationResponse, error) {
	if err := capability.check(); err != nil {
		return nil, err
	}
	req.Action = strings.TrimSpace(req.Action)
	req.Reason = strings.TrimSpace(req.Reason)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if targetID == capability.AdminID() {
		return nil, errs.ErrSelfModeration
	}
	if req.Action == "perm_ban" && !s.policy.PermanentBanEnabled() {
		return nil, errs.ErrPermBanDisabled
	}

	var (
		user *models.User
		msg  string
	)
	err := s.store.InTx(ctx, func(tx store.Repos) error {
		var err error
		user, err = tx.Users().GetForUpdate(ctx, targetID)
		if err != nil {
			return err
		}

		switch req.Action {
		case "warn":
			user.WarningCount++
			msg = "User warned"
			if err := tx.Users().Save(ctx, user); err != nil {
				return err
			}
			return notify(ctx, tx, warningNotice(user, req.Reason))

		case "temp_ban":
			days := s.policy.DefaultBanDays()
			if req.Days != nil {
				days = *req.Days
			}
			until := s.now().Add(time.Duration(days) * 24 * time.Hour)
			user.IsBanned = true
			user.BanReason = reasonOr(req.Reason, defaultTempBanReason)
			user.BanUntil = &until
			msg = "User temporarily banned"

		case "perm_ban":
			user.IsBanned = true
			user.BanReason = reasonOr(req.Reason, defaultPermBanReason)
			user.BanUntil = nil
			msg = "User permanently banned"

		case "unban":
			user.IsBanned = false
			user.BanReason = nil
			user.BanUntil = nil
			msg = "User unbanned"
		}
		return tx.Users().Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	slog.WarnContext(ctx, "user moderated",
		"action", "user_"+req.Action,
		"user_id", capability.AdminID().String(),
		"target_user_id", targetID.String(),
	)
	resp := UserResponse(user)
	return &dto.ModerationResponse{Message: msg, User: &resp}, nil
}

func reasonOr(reason, fallback string) *string {
	if reason == "" {
		reason = fallback
	}
	return &reason
}

// ModerateItem hides, restores or deletes an item. Restore also closes every
// pending report on the item, stamped with the acting admin.
func (s *ModerationService) ModerateItem(ctx context.Context, capability AdminCapability, itemID uuid.UUID, req dto.ModerateItemRequest) (*dto.ModerationResponse, error) {
	if err := capability.check(); err != nil {
		return nil, err
	}
	req.Action = strings.TrimSpace(req.Action)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var (
		item     *models.Item
		reviewed int64
		msg      string
	)
	err := s.store.InTx(ctx, func(tx store.Repos) error {
		var err error
		item, err = tx.Items().GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}

		switch req.Action {
		case "hide":
			reason := models.HiddenByAdmin
			item.IsHidden = true
			item.HiddenReason = &reason
			msg = "Item hidden"
			return tx.Items().Save(ctx, item)

		case "restore":
			item.IsHidden = false
			item.HiddenReason = nil
			if err := tx.Items().Save(ctx, item); err != nil {
				return err
			}
			reviewed, err = tx.Reports().MarkReviewed(ctx, item.ID, capability.AdminID(), s.now())
			msg = "Item restored"
			return err

		case "delete":
			msg = "Item deleted"
			return tx.Items().Delete(ctx, item.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.WarnContext(ctx, "item moderated",
		"action", "item_"+req.Action,
		"item_id", itemID.String(),
		"user_id", capability.AdminID().String(),
		"reviewed_reports", reviewed,
	)

	resp := &dto.ModerationResponse{Message: msg, ReviewedReports: reviewed}
	if req.Action == "delete" {
		discardBlob(ctx, s.blobs, item.Image)
		return resp, nil
	}

	status, err := activeClaimStatus(ctx, s.store.Resolutions(), item.ID)
	if err != nil {
		return nil, err
	}
	view := itemResponse(ctx, s.blobs, item, status, visibility.Viewer{UserID: capability.AdminID(), IsAdmin: true})
	resp.Item = &view
	return resp, nil
}

// ListReports returns the report queue, newest first.
func (s *ModerationService) ListReports(ctx context.Context, capability AdminCapability, status string, limit, offset int) (*dto.ReportListResponse, error) {
	if err := capability.check(); err != nil {
		return nil, err
	}
	switch models.ReportStatus(status) {
	case "", models.ReportPending, models.ReportReviewed:
	default:
		return nil, errs.Invalid("status must be pending or reviewed")
	}
	limit, offset = clampWindow(limit, offset)

	reports, total, err := s.store.Reports().List(ctx, store.ReportFilter{
		Status: models.ReportStatus(status),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, reportResponse(&reports[i]))
	}
	return &dto.ReportListResponse{Reports: out, Total: total, Limit: limit, Offset: offset}, nil
}
