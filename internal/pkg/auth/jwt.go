// internal/pkg/auth/jwt.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the access token claims the storefront reads. The token
// is issued and verified by the commerce API; the storefront only inspects it.
type Claims struct {
	Phone string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// Inspect decodes a token without verifying its signature
func Inspect(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

// IsExpired reports whether the token's exp claim lies before now. Tokens
// that are not JWTs, or carry no exp, never expire locally.
func IsExpired(tokenString string, now time.Time) bool {
	claims, err := Inspect(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// ExpiresAt returns the token expiry, if the token carries one
func ExpiresAt(tokenString string) (time.Time, bool) {
	claims, err := Inspect(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// BearerHeader formats the Authorization header value for a token
func BearerHeader(token string) string {
	return "Bearer " + token
}
