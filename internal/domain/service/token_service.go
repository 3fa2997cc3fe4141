package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried by the access token.
type Claims struct {
	ProfileID string
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating access
// tokens. The persisted session pointer remains the source of truth for
// the active profile; the token only lets the HTTP delivery authenticate
// requests statelessly.
type TokenService interface {
	// GenerateToken creates a new access token for a profile.
	GenerateToken(profileID string) (string, error)

	// ValidateToken checks the validity of a token string and returns
	// its claims.
	ValidateToken(tokenString string) (*Claims, error)

	// GetAccessTokenDuration returns the configured token lifetime.
	GetAccessTokenDuration() time.Duration
}
