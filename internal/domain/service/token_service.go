package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for the bearer tokens. The token carries
// only the user id; role and activity status are resolved against the
// credential store on each request.
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Generate creates a new signed token bound to the given user id.
	Generate(userID uuid.UUID) (string, error)

	// Validate checks the signature and expiry of a token string and returns
	// the embedded claims. Expired tokens fail with ErrTokenExpired and all
	// other failures with ErrTokenInvalid, so callers can log them distinctly.
	Validate(tokenString string) (*Claims, error)

	// TokenDuration returns the configured token lifetime.
	TokenDuration() time.Duration
}
