package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/Adarsh-P-A/retrievo-backend/internal/visibility"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, s *Store, publicID string) *models.User {
	t.Helper()
	u, err := s.Users().Ensure(context.Background(), &models.User{PublicID: publicID, Name: publicID, Email: publicID + "@example.com"})
	require.NoError(t, err)
	return u
}

func seedItem(t *testing.T, s *Store, owner *models.User, vis string) *models.Item {
	t.Helper()
	item := &models.Item{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Kind:        models.KindFound,
		Title:       "Black wallet",
		Description: "Leather wallet found near the library entrance",
		Category:    "keys-wallets",
		Location:    "Library",
		Date:        time.Now(),
		Image:       "items/x.jpg",
		Visibility:  vis,
	}
	require.NoError(t, s.Items().Create(context.Background(), item))
	return item
}

func TestEnsureIsIdempotent(t *testing.T) {
	s := New()
	a := seedUser(t, s, "sub-1")
	b := seedUser(t, s, "sub-1")

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, models.RoleUser, a.Role)
	assert.Len(t, s.data.users, 1)
}

func TestInTxRollsBackOnError(t *testing.T) {
	s := New()
	owner := seedUser(t, s, "owner")
	boom := errors.New("boom")

	err := s.InTx(context.Background(), func(tx store.Repos) error {
		item := &models.Item{ID: uuid.New(), UserID: owner.ID, Kind: models.KindLost, Visibility: models.VisibilityPublic}
		require.NoError(t, tx.Items().Create(context.Background(), item))
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Empty(t, s.data.items)
}

func TestInTxHonoursCancelledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.InTx(ctx, func(tx store.Repos) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
}

func TestCheckHiddenConstraint(t *testing.T) {
	s := New()
	owner := seedUser(t, s, "owner")
	item := seedItem(t, s, owner, models.VisibilityPublic)

	item.IsHidden = true
	err := s.Items().Save(context.Background(), item)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	reason := models.HiddenByAdmin
	item.HiddenReason = &reason
	assert.NoError(t, s.Items().Save(context.Background(), item))
}

func TestDuplicateReport(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := seedUser(t, s, "owner")
	reporter := seedUser(t, s, "reporter")
	item := seedItem(t, s, owner, models.VisibilityPublic)

	require.NoError(t, s.Reports().Create(ctx, &models.Report{UserID: reporter.ID, ItemID: item.ID, Reason: models.ReasonSpam}))
	err := s.Reports().Create(ctx, &models.Report{UserID: reporter.ID, ItemID: item.ID, Reason: models.ReasonFake})

	assert.ErrorIs(t, err, errs.ErrDuplicateReport)
	assert.ErrorIs(t, err, errs.ErrConflict)
	n, err := s.Reports().CountPending(ctx, item.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSingleActiveResolution(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := seedUser(t, s, "owner")
	c1 := seedUser(t, s, "c1")
	c2 := seedUser(t, s, "c2")
	item := seedItem(t, s, owner, models.VisibilityPublic)

	first := &models.Resolution{ClaimantID: c1.ID, FoundItemID: item.ID, Status: models.ResolutionPending}
	require.NoError(t, s.Resolutions().Create(ctx, first))
	err := s.Resolutions().Create(ctx, &models.Resolution{ClaimantID: c2.ID, FoundItemID: item.ID, Status: models.ResolutionPending})
	assert.ErrorIs(t, err, errs.ErrAlreadyClaimed)

	first.Status = models.ResolutionRejected
	require.NoError(t, s.Resolutions().Save(ctx, first))
	assert.NoError(t, s.Resolutions().Create(ctx, &models.Resolution{ClaimantID: c2.ID, FoundItemID: item.ID, Status: models.ResolutionPending}))
}

func TestItemDeleteCascades(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := seedUser(t, s, "owner")
	other := seedUser(t, s, "other")
	item := seedItem(t, s, owner, models.VisibilityPublic)

	res := &models.Resolution{ClaimantID: other.ID, FoundItemID: item.ID, Status: models.ResolutionPending}
	require.NoError(t, s.Resolutions().Create(ctx, res))
	require.NoError(t, s.Reports().Create(ctx, &models.Report{UserID: other.ID, ItemID: item.ID, Reason: models.ReasonOther}))
	n := &models.Notification{ID: uuid.New(), UserID: owner.ID, Type: models.NotifyClaimCreated, ItemID: &item.ID, ResolutionID: &res.ID}
	require.NoError(t, s.Notifications().Create(ctx, n))

	require.NoError(t, s.Items().Delete(ctx, item.ID))

	assert.Empty(t, s.data.reports)
	assert.Empty(t, s.data.resolutions)
	kept := s.data.notifications[n.ID]
	assert.Nil(t, kept.ItemID)
	assert.Nil(t, kept.ResolutionID)
}

func TestListFiltersHiddenAndScope(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := seedUser(t, s, "owner")
	public := seedItem(t, s, owner, models.VisibilityPublic)
	girls := seedItem(t, s, owner, "girls")
	hidden := seedItem(t, s, owner, models.VisibilityPublic)
	reason := models.HiddenAutoReport
	hidden.IsHidden, hidden.HiddenReason = true, &reason
	require.NoError(t, s.Items().Save(ctx, hidden))

	items, total, err := s.Items().List(ctx, store.ItemFilter{Viewer: visibility.Viewer{UserID: uuid.New(), Affiliation: "boys"}, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, public.ID, items[0].ID)

	items, total, err = s.Items().List(ctx, store.ItemFilter{Viewer: visibility.Viewer{UserID: uuid.New(), Affiliation: "girls"}, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, girls.ID, items[0].ID, "newest first")
}

func TestMarkReviewed(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := seedUser(t, s, "owner")
	admin := seedUser(t, s, "admin")
	item := seedItem(t, s, owner, models.VisibilityPublic)
	for i := 0; i < 3; i++ {
		r := seedUser(t, s, uuid.NewString())
		require.NoError(t, s.Reports().Create(ctx, &models.Report{UserID: r.ID, ItemID: item.ID, Reason: models.ReasonSpam}))
	}

	at := time.Now()
	n, err := s.Reports().MarkReviewed(ctx, item.ID, admin.ID, at)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	reports, err := s.Reports().ListByItem(ctx, item.ID)
	require.NoError(t, err)
	for _, r := range reports {
		assert.Equal(t, models.ReportReviewed, r.Status)
		require.NotNil(t, r.ReviewedBy)
		assert.Equal(t, admin.ID, *r.ReviewedBy)
	}
}

func TestNotificationsRecipientOnly(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := seedUser(t, s, "owner")
	other := seedUser(t, s, "other")
	n := &models.Notification{ID: uuid.New(), UserID: owner.ID, Type: models.NotifySystemNotice, Title: "t", Message: "m"}
	require.NoError(t, s.Notifications().Create(ctx, n))

	assert.ErrorIs(t, s.Notifications().MarkRead(ctx, other.ID, n.ID), errs.ErrNotFound)
	require.NoError(t, s.Notifications().MarkRead(ctx, owner.ID, n.ID))

	unread, err := s.Notifications().CountUnread(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestSetPhoneOnce(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := seedUser(t, s, "u")

	require.NoError(t, s.Users().SetPhoneIfEmpty(ctx, u.ID, "+15551234567"))
	assert.ErrorIs(t, s.Users().SetPhoneIfEmpty(ctx, u.ID, "+15550000000"), errs.ErrPhoneAlreadySet)
}

func TestRefreshTokens(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := seedUser(t, s, "u")
	tok := &models.RefreshToken{ID: uuid.New(), UserID: u.ID, TokenHash: "abc", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, s.RefreshTokens().Create(ctx, tok))

	got, err := s.RefreshTokens().GetActive(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, tok.ID, got.ID)

	require.NoError(t, s.RefreshTokens().RevokeByHash(ctx, "abc"))
	_, err = s.RefreshTokens().GetActive(ctx, "abc")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestListNegativeOffset(t *testing.T) {
	s := New()
	owner := seedUser(t, s, "owner")
	seedItem(t, s, owner, models.VisibilityPublic)

	items, total, err := s.Items().List(context.Background(), store.ItemFilter{Viewer: visibility.Anonymous(), Limit: 10, Offset: -10})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.EqualValues(t, 1, total)
}
