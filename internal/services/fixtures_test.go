package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/blob"
	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/policy"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store/memory"
	"github.com/Adarsh-P-A/retrievo-backend/internal/validation"
	"github.com/stretchr/testify/require"
)

type env struct {
	store  *memory.Store
	blobs  *blob.MemoryStore
	policy *policy.Registry

	items         *ItemService
	reports       *ReportService
	resolutions   *ResolutionService
	moderation    *ModerationService
	notifications *NotificationService
	profiles      *ProfileService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := memory.New()
	blobs := blob.NewMemoryStore("https://cdn.test")
	p := policy.NewRegistry(policy.Default())
	v := validation.New(p)
	filter := NewContentFilter(nil)

	return &env{
		store:         st,
		blobs:         blobs,
		policy:        p,
		items:         NewItemService(st, blobs, v, filter, 1<<20),
		reports:       NewReportService(st, v),
		resolutions:   NewResolutionService(st, v, filter),
		moderation:    NewModerationService(st, blobs, p, v),
		notifications: NewNotificationService(st),
		profiles:      NewProfileService(st, blobs, v),
	}
}

func (e *env) user(t *testing.T, publicID, hostel string) *models.User {
	t.Helper()
	u, err := e.store.Users().Ensure(context.Background(), &models.User{
		PublicID: publicID,
		Name:     publicID,
		Email:    publicID + "@example.com",
	})
	require.NoError(t, err)
	if hostel != "" {
		require.NoError(t, e.store.Users().SetHostel(context.Background(), u.ID, hostel))
		u, err = e.store.Users().GetByID(context.Background(), u.ID)
		require.NoError(t, err)
	}
	return u
}

func (e *env) admin(t *testing.T, publicID string) (*models.User, AdminCapability) {
	t.Helper()
	u := e.user(t, publicID, "")
	u.Role = models.RoleAdmin
	require.NoError(t, e.store.Users().Save(context.Background(), u))
	capability, err := NewAdminCapability(u)
	require.NoError(t, err)
	return u, capability
}

func testImage(t *testing.T) *ImageUpload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &ImageUpload{Filename: "photo.png", Data: buf.Bytes()}
}

func createReq(kind, vis string) dto.CreateItemRequest {
	return dto.CreateItemRequest{
		Title:       "Blue water bottle",
		Description: "Steel bottle with a dent near the cap and stickers",
		Category:    "others",
		Location:    "Main canteen",
		Type:        kind,
		Visibility:  vis,
		Date:        time.Now().Format("2006-01-02"),
	}
}

func (e *env) item(t *testing.T, owner *models.User, kind, vis string) *dto.ItemResponse {
	t.Helper()
	resp, err := e.items.Create(context.Background(), owner, createReq(kind, vis), testImage(t))
	require.NoError(t, err)
	return resp
}

const claimText = "It has my name scratched under the cap and a red sticker."
