package memory

import (
	"context"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/google/uuid"
)

type notificationRepo struct{ repos }

func (r notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.lock()()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = r.s.tick()
	r.s.data.notifications[n.ID] = *n
	return nil
}

func (r notificationRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Notification, int64, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, 0, err
	}
	defer r.lock()()

	var rows []models.Notification
	for _, n := range r.s.data.notifications {
		if n.UserID == userID {
			rows = append(rows, n)
		}
	}
	newestFirst(rows, func(n models.Notification) time.Time { return n.CreatedAt })
	return page(rows, limit, offset), int64(len(rows)), nil
}

func (r notificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	defer r.lock()()

	var n int64
	for _, note := range r.s.data.notifications {
		if note.UserID == userID && !note.IsRead {
			n++
		}
	}
	return n, nil
}

func (r notificationRepo) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.lock()()

	n, ok := r.s.data.notifications[id]
	if !ok || n.UserID != userID {
		return errs.ErrNotFound
	}
	n.IsRead = true
	r.s.data.notifications[id] = n
	return nil
}

func (r notificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	defer r.lock()()

	var count int64
	for id, n := range r.s.data.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			r.s.data.notifications[id] = n
			count++
		}
	}
	return count, nil
}
