package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "")
	t.Setenv("MAX_IMAGE_BYTES", "")
	t.Setenv("STORE_DRIVER", "")

	cfg := Load()
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, int64(5<<20), cfg.MaxImageBytes)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("MAX_IMAGE_BYTES", "1024")
	t.Setenv("S3_SIGN_TTL", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 30*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, int64(1024), cfg.MaxImageBytes)
	assert.Equal(t, time.Hour, cfg.S3SignTTL)
}

func TestAdminEmailList(t *testing.T) {
	cfg := &Config{AdminEmails: " Admin@Example.com , ,ops@example.com"}
	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, cfg.AdminEmailList())

	assert.Nil(t, (&Config{}).AdminEmailList())
}
