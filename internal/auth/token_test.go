package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAccessToken(t *testing.T) {
	t.Run("Cookie Preferred", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie_token"})
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "cookie_token", ExtractAccessToken(req))
	})

	t.Run("Header Fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "header_token", ExtractAccessToken(req))
	})

	t.Run("Empty Cookie Falls Back to Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: ""})
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "header_token", ExtractAccessToken(req))
	})

	t.Run("No Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		assert.Empty(t, ExtractAccessToken(req))
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic user:pass")

		assert.Empty(t, ExtractAccessToken(req))
	})
}

func TestParseToken(t *testing.T) {
	const secret = "test-secret"

	t.Run("Valid", func(t *testing.T) {
		tok, err := NewToken(Claims{
			Role: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "ops@example.com",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}, secret)
		require.NoError(t, err)

		claims, err := ParseToken(tok, secret)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, "ops@example.com", claims.Subject)
	})

	t.Run("Expired", func(t *testing.T) {
		tok, err := NewToken(Claims{
			Role: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}, secret)
		require.NoError(t, err)

		_, err = ParseToken(tok, secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		tok, err := NewToken(Claims{Role: "admin"}, "other")
		require.NoError(t, err)

		_, err = ParseToken(tok, secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseToken("invalid-token", secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseToken("", secret)
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("No Secret", func(t *testing.T) {
		_, err := ParseToken("anything", "")
		assert.ErrorIs(t, err, ErrNoSecret)

		_, err = NewToken(Claims{}, "")
		assert.ErrorIs(t, err, ErrNoSecret)
	})
}
