// Package identity extracts the caller's identity from the bearer token.
//
// Claims are read without verifying the signature. The client only needs the
// embedded user ID for socket auth and presence signals; the server remains
// the source of truth and rejects forged tokens.
package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the JWT payload issued by the TechCrush backend.
type TokenClaims struct {
	// UserID is the authenticated user's identifier.
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// ParseToken decodes the claims embedded in a bearer token without verifying
// its signature.
func ParseToken(token string) (*TokenClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("token is empty")
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &TokenClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}
	return claims, nil
}

// UserIDFromToken returns the user identifier embedded in the token.
func UserIDFromToken(token string) (string, error) {
	claims, err := ParseToken(token)
	if err != nil {
		return "", err
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return "", fmt.Errorf("token carries no user identifier")
	}
	return userID, nil
}

// IsExpiringSoon reports whether the token is already expired or will expire
// within the given window.
//
// Tokens without an exp claim are treated as non-expiring; the server will
// 401 if it disagrees.
func IsExpiringSoon(token string, window time.Duration) (bool, error) {
	claims, err := ParseToken(token)
	if err != nil {
		return true, err
	}
	if claims.ExpiresAt == nil {
		return false, nil
	}
	return time.Until(claims.ExpiresAt.Time) <= window, nil
}
