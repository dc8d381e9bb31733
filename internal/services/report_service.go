package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/Adarsh-P-A/retrievo-backend/internal/validation"
	"github.com/Adarsh-P-A/retrievo-backend/internal/visibility"
	"github.com/google/uuid"
)

// AutoHideThreshold is the number of pending reports that hides an item.
const AutoHideThreshold = 5

type ReportService struct {
	store    store.Store
	validate *validation.Validator
}

func NewReportService(st store.Store, v *validation.Validator) *ReportService {
	return &ReportService{store: st, validate: v}
}

// FileReport records a report and hides the item once it collects
// AutoHideThreshold pending reports. The item row lock serializes reporters
// so the hide and the owner notice happen exactly once.
func (s *ReportService) FileReport(ctx context.Context, reporter *models.User, itemID uuid.UUID, req dto.ReportRequest) (*dto.ReportResponse, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var (
		report models.Report
		hidden bool
		count  int64
	)
	err := s.store.InTx(ctx, func(tx store.Repos) error {
		item, err := tx.Items().GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item.IsHidden || !visibility.Visible(item, visibility.ForUser(reporter)) {
			return errs.ErrNotFound
		}
		if item.OwnedBy(reporter.ID) {
			return errs.ErrSelfReport
		}

		report = models.Report{
			ID:     uuid.New(),
			UserID: reporter.ID,
			ItemID: item.ID,
			Reason: models.ReportReason(req.Reason),
			Status: models.ReportPending,
		}
		if err := tx.Reports().Create(ctx, &report); err != nil {
			return err
		}

		count, err = tx.Reports().CountPending(ctx, item.ID)
		if err != nil {
			return err
		}
		if count < AutoHideThreshold {
			return nil
		}

		reason := models.HiddenAutoReport
		item.IsHidden = true
		item.HiddenReason = &reason
		if err := tx.Items().Save(ctx, item); err != nil {
			return err
		}
		hidden = true
		return notify(ctx, tx, autoHiddenNotice(item, count))
	})
	if err != nil {
		return nil, err
	}

	if hidden {
		slog.WarnContext(ctx, "item auto-hidden",
			"item_id", itemID.String(),
			"action", "auto_hide",
			"pending_reports", count,
		)
	}
	slog.InfoContext(ctx, "report filed", "item_id", itemID.String(), "user_id", reporter.ID.String(), "reason", req.Reason)

	resp := reportResponse(&report)
	resp.ItemHidden = hidden
	return &resp, nil
}
