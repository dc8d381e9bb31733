package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *env) systemNotices(t *testing.T, u *models.User) int {
	t.Helper()
	list, err := e.notifications.List(context.Background(), u, NewPage(1, MaxPageSize))
	require.NoError(t, err)
	n := 0
	for _, item := range list.Notifications {
		if item.Type == string(models.NotifySystemNotice) {
			n++
		}
	}
	return n
}

func TestFileReport(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner", "")
	reporter := e.user(t, "reporter", "")
	item := e.item(t, owner, "lost", "public")

	resp, err := e.reports.FileReport(ctx, reporter, item.ID, dto.ReportRequest{Reason: "spam"})
	require.NoError(t, err)
	assert.Equal(t, string(models.ReportPending), resp.Status)
	assert.Equal(t, reporter.ID, resp.ReporterID)
	assert.False(t, resp.ItemHidden)

	_, err = e.reports.FileReport(ctx, reporter, item.ID, dto.ReportRequest{Reason: "fake"})
	assert.ErrorIs(t, err, errs.ErrDuplicateReport)

	reports, err := e.store.Reports().ListByItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, reports, 1, "duplicate leaves one row")
}

func TestFileReportRejections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner", "boys")
	girl := e.user(t, "girl", "girls")
	item := e.item(t, owner, "lost", "public")
	scoped := e.item(t, owner, "lost", "boys")

	_, err := e.reports.FileReport(ctx, owner, item.ID, dto.ReportRequest{Reason: "spam"})
	assert.ErrorIs(t, err, errs.ErrSelfReport)

	_, err = e.reports.FileReport(ctx, girl, scoped.ID, dto.ReportRequest{Reason: "spam"})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = e.reports.FileReport(ctx, girl, uuid.New(), dto.ReportRequest{Reason: "spam"})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = e.reports.FileReport(ctx, girl, item.ID, dto.ReportRequest{Reason: "boring"})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestAutoHideAtThreshold(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner", "")
	item := e.item(t, owner, "lost", "public")

	for i := 1; i <= AutoHideThreshold; i++ {
		reporter := e.user(t, fmt.Sprintf("reporter-%d", i), "")
		resp, err := e.reports.FileReport(ctx, reporter, item.ID, dto.ReportRequest{Reason: "spam"})
		require.NoError(t, err)
		assert.Equal(t, i == AutoHideThreshold, resp.ItemHidden, "report %d", i)
	}

	stored, err := e.store.Items().Get(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsHidden)
	require.NotNil(t, stored.HiddenReason)
	assert.Equal(t, models.HiddenAutoReport, *stored.HiddenReason)
	assert.Equal(t, 1, e.systemNotices(t, owner))

	late := e.user(t, "late", "")
	_, err = e.reports.FileReport(ctx, late, item.ID, dto.ReportRequest{Reason: "spam"})
	assert.ErrorIs(t, err, errs.ErrNotFound, "hidden items cannot be reported")
	assert.Equal(t, 1, e.systemNotices(t, owner))
}

func TestConcurrentReportsHideOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner", "")
	item := e.item(t, owner, "lost", "public")

	const n = 12
	reporters := make([]*models.User, n)
	for i := range reporters {
		reporters[i] = e.user(t, fmt.Sprintf("reporter-%d", i), "")
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		hides   int
		success int
	)
	for _, r := range reporters {
		wg.Add(1)
		go func(r *models.User) {
			defer wg.Done()
			resp, err := e.reports.FileReport(ctx, r, item.ID, dto.ReportRequest{Reason: "inappropriate"})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				return
			}
			success++
			if resp.ItemHidden {
				hides++
			}
		}(r)
	}
	wg.Wait()

	assert.Equal(t, 1, hides)
	assert.Equal(t, AutoHideThreshold, success, "reports after the hide see a hidden item")
	assert.Equal(t, 1, e.systemNotices(t, owner))
}
