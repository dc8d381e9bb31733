package services

import (
	"context"
	"fmt"

	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/google/uuid"
)

// notify writes a notification inside the caller's transaction so it
// commits or rolls back together with the event that caused it.
func notify(ctx context.Context, tx store.Repos, n models.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if err := tx.Notifications().Create(ctx, &n); err != nil {
		return fmt.Errorf("create %s notification: %w", n.Type, err)
	}
	return nil
}

func ref(id uuid.UUID) *uuid.UUID {
	return &id
}

func claimCreatedNotice(item *models.Item, res *models.Resolution) models.Notification {
	return models.Notification{
		UserID:       item.UserID,
		Type:         models.NotifyClaimCreated,
		Title:        "New claim on your item",
		Message:      fmt.Sprintf("Someone claimed %q. Review the claim to approve or reject it.", item.Title),
		ItemID:       ref(item.ID),
		ResolutionID: ref(res.ID),
	}
}

func claimApprovedNotice(item *models.Item, res *models.Resolution) models.Notification {
	return models.Notification{
		UserID:       res.ClaimantID,
		Type:         models.NotifyClaimApproved,
		Title:        "Your claim was approved",
		Message:      fmt.Sprintf("The owner of %q approved your claim. Contact them to collect the item.", item.Title),
		ItemID:       ref(item.ID),
		ResolutionID: ref(res.ID),
	}
}

func claimRejectedNotice(item *models.Item, res *models.Resolution, reason string) models.Notification {
	return models.Notification{
		UserID:       res.ClaimantID,
		Type:         models.NotifyClaimRejected,
		Title:        "Your claim was rejected",
		Message:      fmt.Sprintf("Your claim on %q was rejected: %s", item.Title, reason),
		ItemID:       ref(item.ID),
		ResolutionID: ref(res.ID),
	}
}

func autoHiddenNotice(item *models.Item, reports int64) models.Notification {
	return models.Notification{
		UserID: item.UserID,
		Type:   models.NotifySystemNotice,
		Title:  "Your item was hidden",
		Message: fmt.Sprintf("%q received %d reports and is hidden pending review by a moderator.",
			item.Title, reports),
		ItemID: ref(item.ID),
	}
}

func warningNotice(user *models.User, reason string) models.Notification {
	msg := fmt.Sprintf("You have received a warning from a moderator (warning %d).", user.WarningCount)
	if reason != "" {
		msg += " Reason: " + reason
	}
	return models.Notification{
		UserID:  user.ID,
		Type:    models.NotifyWarningIssued,
		Title:   "Account warning",
		Message: msg,
	}
}
