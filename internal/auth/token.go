package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenCookie is read before the Authorization header.
const AccessTokenCookie = "access_token"

var (
	ErrMissingToken = errors.New("missing access token")
	ErrInvalidToken = errors.New("invalid access token")
	ErrNoSecret     = errors.New("admin jwt secret not configured")
)

// Claims carried by back-office tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// ParseToken verifies an HS256 token and returns its claims. Expiry is
// enforced when the token carries one.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if tokenStr == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// NewToken signs claims with secret. Used by tooling and tests.
func NewToken(claims Claims, secret string) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
