package services

import (
	"context"
	"log/slog"

	"github.com/Adarsh-P-A/retrievo-backend/internal/blob"
	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/Adarsh-P-A/retrievo-backend/internal/visibility"
	"github.com/google/uuid"
)

func claimStatus(status models.ResolutionStatus, active bool) models.ClaimStatus {
	if !active {
		return models.ClaimNone
	}
	if status == models.ResolutionApproved {
		return models.ClaimApproved
	}
	return models.ClaimPending
}

func UserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		PublicID:     u.PublicID,
		Name:         u.Name,
		Email:        u.Email,
		Image:        u.Image,
		Phone:        u.Phone,
		Hostel:       u.Hostel,
		Role:         string(u.Role),
		WarningCount: u.WarningCount,
		IsBanned:     u.IsBanned,
		BanReason:    u.BanReason,
		BanUntil:     u.BanUntil,
		CreatedAt:    u.CreatedAt,
	}
}

// itemResponse signs the image URL. A signing failure is logged and leaves
// the URL empty rather than failing the read.
func itemResponse(ctx context.Context, blobs blob.Store, item *models.Item, status models.ClaimStatus, v visibility.Viewer) dto.ItemResponse {
	resp := dto.ItemResponse{
		ID:          item.ID,
		OwnerID:     item.UserID,
		Type:        string(item.Kind),
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Location:    item.Location,
		Date:        item.Date,
		Visibility:  item.Visibility,
		IsHidden:    item.IsHidden,
		ClaimStatus: string(status),
		IsOwner:     !v.IsAnonymous() && item.OwnedBy(v.UserID),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if item.HiddenReason != nil {
		reason := string(*item.HiddenReason)
		resp.HiddenReason = &reason
	}
	if item.Image != "" {
		url, err := blobs.Sign(ctx, item.Image)
		if err != nil {
			slog.WarnContext(ctx, "failed to sign image url", "item_id", item.ID.String(), "error", err)
		} else {
			resp.ImageURL = url
		}
	}
	return resp
}

// itemViews renders items with their claim status, fetched in one query.
func itemViews(ctx context.Context, resolutions store.ResolutionRepository, blobs blob.Store, items []models.Item, v visibility.Viewer) ([]dto.ItemResponse, error) {
	ids := make([]uuid.UUID, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	statuses, err := resolutions.ActiveStatuses(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		st, active := statuses[items[i].ID]
		out = append(out, itemResponse(ctx, blobs, &items[i], claimStatus(st, active), v))
	}
	return out, nil
}

func reportResponse(r *models.Report) dto.ReportResponse {
	return dto.ReportResponse{
		ID:         r.ID,
		ItemID:     r.ItemID,
		ReporterID: r.UserID,
		Reason:     string(r.Reason),
		Status:     string(r.Status),
		ReviewedBy: r.ReviewedBy,
		ReviewedAt: r.ReviewedAt,
		CreatedAt:  r.CreatedAt,
	}
}

func resolutionResponse(r *models.Resolution) dto.ResolutionResponse {
	return dto.ResolutionResponse{
		ID:               r.ID,
		FoundItemID:      r.FoundItemID,
		ClaimantID:       r.ClaimantID,
		Status:           string(r.Status),
		ClaimDescription: r.ClaimDescription,
		RejectionReason:  r.RejectionReason,
		DecidedAt:        r.DecidedAt,
		CreatedAt:        r.CreatedAt,
	}
}

func notificationResponse(n *models.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:           n.ID,
		Type:         string(n.Type),
		Title:        n.Title,
		Message:      n.Message,
		ItemID:       n.ItemID,
		ResolutionID: n.ResolutionID,
		IsRead:       n.IsRead,
		CreatedAt:    n.CreatedAt,
	}
}
