package principal

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromClaims(t *testing.T) {
	p, err := FromClaims(jwt.MapClaims{
		"sub":     "google-123",
		"name":    "Asha",
		"email":   "asha@example.com",
		"picture": "https://example.com/a.png",
		"role":    "admin",
		"hostel":  "girls",
	})
	require.NoError(t, err)
	assert.Equal(t, Principal{
		Subject:     "google-123",
		Name:        "Asha",
		Email:       "asha@example.com",
		Image:       "https://example.com/a.png",
		Role:        "admin",
		Affiliation: "girls",
	}, p)
}

func TestFromClaimsMissingSubject(t *testing.T) {
	_, err := FromClaims(jwt.MapClaims{"email": "x@example.com"})
	assert.Error(t, err)

	_, err = FromClaims(jwt.MapClaims{"sub": ""})
	assert.Error(t, err)
}
