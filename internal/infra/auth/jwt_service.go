// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vendorbridge/config"
	domainerrors "vendorbridge/internal/domain/errors"
	"vendorbridge/internal/domain/service"
	"vendorbridge/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Tokens are stateless bearer credentials: no server-side session table exists,
// so expiry is the only bound on token lifetime.
type jwtService struct {
	secret string        // Symmetric signing key, loaded from process configuration.
	ttl    time.Duration // Token lifetime, 7 days by default.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.JWT == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret: cfg.SecretKey.JWT,
		ttl:    cfg.TokenTTL(),
	}, nil
}

// Generate creates a new signed token carrying the user id claim.
func (s *jwtService) Generate(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate checks the signature and expiry of a token string.
// Expired tokens map to ErrTokenExpired; any other failure (malformed input,
// wrong signing method, bad signature) maps to ErrTokenInvalid.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrTokenExpired.WrapMessage("token validation failed")
		}

		return nil, domainerrors.ErrTokenInvalid.WrapMessage("token validation failed")
	}

	if !token.Valid {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("token validation failed")
	}

	return claims, nil
}

// TokenDuration returns the configured token lifetime.
func (s *jwtService) TokenDuration() time.Duration {
	return s.ttl
}
