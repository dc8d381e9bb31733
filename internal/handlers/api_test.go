package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/blob"
	"github.com/Adarsh-P-A/retrievo-backend/internal/config"
	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/handlers"
	"github.com/Adarsh-P-A/retrievo-backend/internal/policy"
	"github.com/Adarsh-P-A/retrievo-backend/internal/routes"
	"github.com/Adarsh-P-A/retrievo-backend/internal/services"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store/memory"
	"github.com/Adarsh-P-A/retrievo-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenVerifier accepts raw ID tokens of the form "<sub>" registered in
// users and rejects anything else.
type tokenVerifier map[string]string

func (v tokenVerifier) Verify(ctx context.Context, raw string) (*services.GoogleClaims, error) {
	email, ok := v[raw]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return &services.GoogleClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: raw},
		Email:            email,
		Name:             raw,
	}, nil
}

type testAPI struct {
	app   *fiber.App
	store *memory.Store
}

const maxImageBytes = 64 << 10

func setupAPI(t *testing.T) *testAPI {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:        "handler-test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
		AdminEmails:      "admin@example.com",
		CORSOrigins:      "*",
		MaxImageBytes:    maxImageBytes,
	}
	st := memory.New()
	blobs := blob.NewMemoryStore("https://cdn.test")
	pol := policy.NewRegistry(policy.Default())
	validate := validation.New(pol)
	filter := services.NewContentFilter(nil)
	verifier := tokenVerifier{
		"owner":    "owner@example.com",
		"stranger": "stranger@example.com",
		"admin":    "admin@example.com",
	}
	for i := 0; i < services.AutoHideThreshold; i++ {
		verifier[reporterName(i)] = reporterName(i) + "@example.com"
	}

	identity := services.NewIdentityService(st, cfg, verifier)
	items := services.NewItemService(st, blobs, validate, filter, maxImageBytes)
	reports := services.NewReportService(st, validate)
	resolutions := services.NewResolutionService(st, validate, filter)
	moderation := services.NewModerationService(st, blobs, pol, validate)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler, BodyLimit: maxImageBytes + 1<<20})
	routes.Setup(app, cfg, nil, identity, routes.Handlers{
		Auth:          handlers.NewAuthHandler(identity),
		Health:        handlers.NewHealthHandler(st),
		Config:        handlers.NewConfigHandler(pol, maxImageBytes),
		Legal:         handlers.NewLegalHandler("Retrievo"),
		Items:         handlers.NewItemHandler(items, reports, maxImageBytes),
		Resolutions:   handlers.NewResolutionHandler(resolutions),
		Moderation:    handlers.NewModerationHandler(moderation, resolutions),
		Profiles:      handlers.NewProfileHandler(services.NewProfileService(st, blobs, validate)),
		Notifications: handlers.NewNotificationHandler(services.NewNotificationService(st)),
	})
	return &testAPI{app: app, store: st}
}

func reporterName(i int) string {
	return "reporter" + string(rune('a'+i))
}

func (a *testAPI) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func (a *testAPI) jsonReq(t *testing.T, method, path, token string, payload any) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.do(t, req)
}

func (a *testAPI) signIn(t *testing.T, sub string) string {
	t.Helper()
	resp, body := a.jsonReq(t, http.MethodPost, "/api/auth/google", "", dto.GoogleSignInRequest{IDToken: sub})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &auth))
	return auth.AccessToken
}

func pngBytes(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (a *testAPI) createItem(t *testing.T, token, kind, vis string, img []byte) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":       "Silver laptop",
		"description": "Thin silver laptop with a cracked corner on the lid",
		"category":    "electronics",
		"location":    "Reading room",
		"type":        kind,
		"visibility":  vis,
		"date":        "2026-10-01",
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if img != nil {
		part, err := w.CreateFormFile("image", "laptop.png")
		require.NoError(t, err)
		_, err = part.Write(img)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/items", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return a.do(t, req)
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func TestHealthAndConfig(t *testing.T) {
	api := setupAPI(t)

	resp, body := api.jsonReq(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[dto.HealthResponse](t, body).DB)

	resp, body = api.jsonReq(t, http.MethodGet, "/api/config", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cfg := decode[dto.ConfigResponse](t, body)
	assert.Contains(t, cfg.Categories, "keys-wallets")
	assert.Equal(t, []string{"public", "boys", "girls"}, cfg.VisibilityScopes)
	assert.Equal(t, services.AutoHideThreshold, cfg.AutoHideThreshold)

	resp, _ = api.jsonReq(t, http.MethodGet, "/api/legal/privacy", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := setupAPI(t)

	resp, body := api.jsonReq(t, http.MethodGet, "/api/profile/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.True(t, decode[dto.ErrorResponse](t, body).Error)

	resp, _ = api.jsonReq(t, http.MethodGet, "/api/profile/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = api.jsonReq(t, http.MethodPost, "/api/auth/google", "", dto.GoogleSignInRequest{IDToken: "nobody"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestItemLifecycleOverHTTP(t *testing.T) {
	api := setupAPI(t)
	owner := api.signIn(t, "owner")
	stranger := api.signIn(t, "stranger")

	resp, body := api.createItem(t, owner, "found", "public", pngBytes(t, 16))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	item := decode[dto.ItemResponse](t, body)
	assert.NotEmpty(t, item.ImageURL)

	resp, body = api.jsonReq(t, http.MethodGet, "/api/items/"+item.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[dto.ItemResponse](t, body).IsOwner)

	resp, body = api.jsonReq(t, http.MethodGet, "/api/items/"+item.ID.String(), owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.ItemResponse](t, body).IsOwner)

	resp, body = api.jsonReq(t, http.MethodGet, "/api/items?type=found&limit=5", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ItemListResponse](t, body)
	assert.EqualValues(t, 1, list.Total)
	assert.Equal(t, 5, list.Limit)

	title := "Silver notebook"
	resp, _ = api.jsonReq(t, http.MethodPatch, "/api/items/"+item.ID.String(), stranger, dto.UpdateItemRequest{Title: &title})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = api.jsonReq(t, http.MethodPost, "/api/resolutions", stranger, dto.CreateClaimRequest{
		ItemID:           item.ID.String(),
		ClaimDescription: "My laptop has a blue sticker under the battery.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	claim := decode[dto.ResolutionResponse](t, body)

	resp, body = api.jsonReq(t, http.MethodPost, "/api/resolutions/"+claim.ID.String()+"/approve", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = api.jsonReq(t, http.MethodPatch, "/api/items/"+item.ID.String(), owner, dto.UpdateItemRequest{Title: &title})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = api.jsonReq(t, http.MethodGet, "/api/notifications", stranger, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, decode[dto.NotificationListResponse](t, body).Unread)

	resp, _ = api.jsonReq(t, http.MethodGet, "/api/items/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateItemImageErrors(t *testing.T) {
	api := setupAPI(t)
	owner := api.signIn(t, "owner")

	resp, _ := api.createItem(t, owner, "lost", "public", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := api.createItem(t, owner, "lost", "public", make([]byte, maxImageBytes+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode, string(body))
}

func TestReportsAndAdminOverHTTP(t *testing.T) {
	api := setupAPI(t)
	owner := api.signIn(t, "owner")
	stranger := api.signIn(t, "stranger")
	admin := api.signIn(t, "admin")

	resp, body := api.createItem(t, owner, "lost", "public", pngBytes(t, 8))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	item := decode[dto.ItemResponse](t, body)
	reportPath := "/api/items/" + item.ID.String() + "/report"

	var last dto.ReportResponse
	for i := 0; i < services.AutoHideThreshold; i++ {
		token := api.signIn(t, reporterName(i))
		resp, body := api.jsonReq(t, http.MethodPost, reportPath, token, dto.ReportRequest{Reason: "spam"})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
		last = decode[dto.ReportResponse](t, body)
	}
	assert.True(t, last.ItemHidden)

	resp, _ = api.jsonReq(t, http.MethodPost, reportPath, api.signIn(t, reporterName(0)), dto.ReportRequest{Reason: "spam"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "hidden item")

	resp, _ = api.jsonReq(t, http.MethodGet, "/api/items/"+item.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = api.jsonReq(t, http.MethodGet, "/api/admin/reports", stranger, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = api.jsonReq(t, http.MethodGet, "/api/admin/reports?status=pending", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.EqualValues(t, services.AutoHideThreshold, decode[dto.ReportListResponse](t, body).Total)

	resp, body = api.jsonReq(t, http.MethodPost, "/api/admin/items/"+item.ID.String()+"/moderate", admin, dto.ModerateItemRequest{Action: "restore"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.EqualValues(t, services.AutoHideThreshold, decode[dto.ModerationResponse](t, body).ReviewedReports)

	resp, _ = api.jsonReq(t, http.MethodGet, "/api/items/"+item.ID.String(), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBannedUserOverHTTP(t *testing.T) {
	api := setupAPI(t)
	owner := api.signIn(t, "owner")
	stranger := api.signIn(t, "stranger")
	admin := api.signIn(t, "admin")

	target, err := api.store.Users().GetByPublicID(context.Background(), "stranger")
	require.NoError(t, err)

	resp, body := api.jsonReq(t, http.MethodPost, "/api/admin/users/"+target.ID.String()+"/moderate", admin, dto.ModerateUserRequest{Action: "temp_ban", Reason: "Spamming claims"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = api.jsonReq(t, http.MethodGet, "/api/profile/me", stranger, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "account is banned", decode[dto.ErrorResponse](t, body).Message)

	resp, _ = api.createItem(t, owner, "lost", "public", pngBytes(t, 8))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = api.jsonReq(t, http.MethodGet, "/api/items", stranger, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "banned callers browse anonymously")
	assert.EqualValues(t, 1, decode[dto.ItemListResponse](t, body).Total)
}
