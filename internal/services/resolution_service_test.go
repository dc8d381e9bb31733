package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rejectText = "The description does not match the item at all."

func claimReq(item *dto.ItemResponse) dto.CreateClaimRequest {
	return dto.CreateClaimRequest{ItemID: item.ID.String(), ClaimDescription: claimText}
}

func TestCreateClaim(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner", "")
	claimant := e.user(t, "claimant", "")
	item := e.item(t, owner, "found", "public")

	res, err := e.resolutions.Create(ctx, claimant, claimReq(item))
	require.NoError(t, err)
	assert.Equal(t, string(models.ResolutionPending), res.Status)
	assert.Equal(t, claimant.ID, res.ClaimantID)

	list, err := e.notifications.List(ctx, owner, NewPage(1, 20))
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, string(models.NotifyClaimCreated), list.Notifications[0].Type)
	assert.Equal(t, &res.ID, list.Notifications[0].ResolutionID)
	assert.EqualValues(t, 1, list.Unread)
}

func TestCreateClaimRejections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner", "boys")
	girl := e.user(t, "girl", "girls")
	found := e.item(t, owner, "found", "public")
	lost := e.item(t, owner, "lost", "public")
	scoped := e.item(t, owner, "found", "boys")

	_, err := e.resolutions.Create(ctx, owner, claimReq(found))
	assert.ErrorIs(t, err, errs.ErrSelfClaim)

	_, err = e.resolutions.Create(ctx, girl, claimReq(lost))
	assert.ErrorIs(t, err, errs.ErrNotClaimable)

	_, err = e.resolutions.Create(ctx, girl, claimReq(scoped))
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = e.resolutions.Create(ctx, girl, dto.CreateClaimRequest{ItemID: found.ID.String(), ClaimDescription: "mine"})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = e.resolutions.Create(ctx, girl, dto.CreateClaimRequest{ItemID: "not-a-uuid", ClaimDescription: claimText})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestConcurrentClaimsSingleWinner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner", "")
	item := e.item(t, owner, "found", "public")

	const n = 10
	claimants := make([]*models.User, n)
	for i := range claimants {
		claimants[i] = e.user(t, fmt.Sprintf("claimant-%d", i), "")
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for _, c := range claimants {
		wg.Add(1)
		go func(c *models.User) {
			defer wg.Done()
			_, err := e.resolutions.Create(ctx, c, claimReq(item))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, errs.ErrConflict):
				conflicts++
			}
		}(c)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
}

func TestApproveClaim(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner", "")
	claimant := e.user(t, "claimant", "")
	stranger := e.user(t, "stranger", "")
	item := e.item(t, owner, "found", "public")
	res, err := e.resolutions.Create(ctx, claimant, claimReq(item))
	require.NoError(t, err)

	_, err = e.resolutions.Approve(ctx, claimant, res.ID)
	assert.ErrorIs(t, err, errs.ErrNotOwner)
	_, err = e.resolutions.Approve(ctx, stranger, res.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	approved, err := e.resolutions.Approve(ctx, owner, res.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ResolutionApproved), approved.Status)
	assert.NotNil(t, approved.DecidedAt)
	assert.Equal(t, claimant.Email, approved.ClaimantEmail)

	_, err = e.resolutions.Approve(ctx, owner, res.ID)
	assert.ErrorIs(t, err, errs.ErrAlreadyDecided)
	_, err = e.resolutions.Reject(ctx, owner, res.ID, dto.RejectClaimRequest{RejectionReason: rejectText})
	assert.ErrorIs(t, err, errs.ErrAlreadyDecided)

	stored, err := e.store.Items().Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, stored.UserID, "ownership is not transferred")

	list, err := e.notifications.List(ctx, claimant, NewPage(1, 20))
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, string(models.NotifyClaimApproved), list.Notifications[0].Type)
}

func TestRejectClaimReopensItem(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner", "")
	first := e.user(t, "first", "")
	second := e.user(t, "second", "")
	item := e.item(t, owner, "found", "public")
	res, err := e.resolutions.Create(ctx, first, claimReq(item))
	require.NoError(t, err)

	_, err = e.resolutions.Reject(ctx, owner, res.ID, dto.RejectClaimRequest{RejectionReason: "no"})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	rejected, err := e.resolutions.Reject(ctx, owner, res.ID, dto.RejectClaimRequest{RejectionReason: rejectText})
	require.NoError(t, err)
	assert.Equal(t, string(models.ResolutionRejected), rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, rejectText, *rejected.RejectionReason)

	_, err = e.resolutions.Create(ctx, second, claimReq(item))
	assert.NoError(t, err, "rejected claims do not block new ones")

	list, err := e.notifications.List(ctx, first, NewPage(1, 20))
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, string(models.NotifyClaimRejected), list.Notifications[0].Type)
	assert.Contains(t, list.Notifications[0].Message, rejectText)
}

func TestGetAndListClaims(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner", "")
	claimant := e.user(t, "claimant", "")
	stranger := e.user(t, "stranger", "")
	admin, capability := e.admin(t, "admin")
	item := e.item(t, owner, "found", "public")
	res, err := e.resolutions.Create(ctx, claimant, claimReq(item))
	require.NoError(t, err)

	for _, u := range []*models.User{owner, claimant, admin} {
		_, err := e.resolutions.Get(ctx, u, res.ID)
		assert.NoError(t, err, u.PublicID)
	}
	_, err = e.resolutions.Get(ctx, stranger, res.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	incoming, err := e.resolutions.ListIncoming(ctx, owner)
	require.NoError(t, err)
	require.Len(t, incoming.Resolutions, 1)
	assert.Empty(t, incoming.Resolutions[0].ClaimantEmail, "contact hidden until approval")

	_, err = e.resolutions.Approve(ctx, owner, res.ID)
	require.NoError(t, err)
	incoming, err = e.resolutions.ListIncoming(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, claimant.Email, incoming.Resolutions[0].ClaimantEmail)

	mine, err := e.resolutions.ListMine(ctx, claimant)
	require.NoError(t, err)
	assert.EqualValues(t, 1, mine.Total)

	all, err := e.resolutions.ListClaims(ctx, capability, "approved", 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, all.Total)

	_, err = e.resolutions.ListClaims(ctx, AdminCapability{}, "", 10, 0)
	assert.ErrorIs(t, err, errs.ErrNotAdmin)
	_, err = e.resolutions.ListClaims(ctx, capability, "done", 10, 0)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}
