package services

import (
	"context"

	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/google/uuid"
)

type NotificationService struct {
	store store.Store
}

func NewNotificationService(st store.Store) *NotificationService {
	return &NotificationService{store: st}
}

func (s *NotificationService) List(ctx context.Context, user *models.User, p Page) (*dto.NotificationListResponse, error) {
	rows, total, err := s.store.Notifications().List(ctx, user.ID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}
	unread, err := s.store.Notifications().CountUnread(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.NotificationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, notificationResponse(&rows[i]))
	}
	return &dto.NotificationListResponse{
		Notifications: out,
		Unread:        unread,
		Page:          p.Page,
		Limit:         p.Limit,
		Total:         total,
		HasMore:       p.HasMore(len(rows), total),
	}, nil
}

// MarkRead fails with ErrNotFound unless user is the recipient.
func (s *NotificationService) MarkRead(ctx context.Context, user *models.User, id uuid.UUID) error {
	return s.store.Notifications().MarkRead(ctx, user.ID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, user *models.User) (int64, error) {
	return s.store.Notifications().MarkAllRead(ctx, user.ID)
}
