package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jwksFixture struct {
	key    *rsa.PrivateKey
	client *GoogleJWKSClient
	hits   *int32
}

func newJWKSFixture(t *testing.T) jwksFixture {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JWK{{
			Kty: "RSA",
			Kid: "kid-1",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	}))
	t.Cleanup(srv.Close)

	c := NewGoogleJWKSClient("client-123")
	c.jwksURL = srv.URL
	return jwksFixture{key: key, client: c, hits: &hits}
}

func (f jwksFixture) sign(t *testing.T, claims GoogleClaims, kid string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(f.key)
	require.NoError(t, err)
	return s
}

func googleClaims(iss, aud string, exp time.Time) GoogleClaims {
	return GoogleClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    iss,
			Subject:   "google-sub-1",
			Audience:  jwt.ClaimStrings{aud},
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email:         "asha@example.com",
		EmailVerified: true,
		Name:          "Asha",
	}
}

func TestGoogleVerify(t *testing.T) {
	f := newJWKSFixture(t)
	ctx := context.Background()

	raw := f.sign(t, googleClaims("https://accounts.google.com", "client-123", time.Now().Add(time.Hour)), "kid-1")
	claims, err := f.client.Verify(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", claims.Subject)
	assert.Equal(t, "asha@example.com", claims.Email)

	_, err = f.client.Verify(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(f.hits), "keys are cached")
}

func TestGoogleVerifyRejects(t *testing.T) {
	f := newJWKSFixture(t)
	ctx := context.Background()
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name string
		raw  string
	}{
		{"wrong audience", f.sign(t, googleClaims("accounts.google.com", "other-client", future), "kid-1")},
		{"wrong issuer", f.sign(t, googleClaims("https://evil.example.com", "client-123", future), "kid-1")},
		{"expired", f.sign(t, googleClaims("accounts.google.com", "client-123", time.Now().Add(-time.Hour)), "kid-1")},
		{"unknown kid", f.sign(t, googleClaims("accounts.google.com", "client-123", future), "kid-2")},
		{"garbage", "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.client.Verify(ctx, tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestGoogleVerifyRejectsHS256(t *testing.T) {
	f := newJWKSFixture(t)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, googleClaims("accounts.google.com", "client-123", time.Now().Add(time.Hour)))
	raw, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = f.client.Verify(context.Background(), raw)
	assert.Error(t, err)
}
