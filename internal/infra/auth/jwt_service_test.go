package auth

import (
	"testing"
	"time"

	"vendorbridge/config"
	domainerrors "vendorbridge/internal/domain/errors"
	"vendorbridge/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_key_very_long_for_testing"

func testTokenConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.JWT = testSecret

	return cfg
}

// signTestToken signs claims directly with the test secret, bypassing the
// service, so tests can fabricate arbitrary issue/expiry times.
func signTestToken(t *testing.T, userID uuid.UUID, issuedAt, expiresAt time.Time) string {
	t.Helper()

	claims := &service.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return signed
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	userID := uuid.New()

	token, err := jwtService.Generate(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.Validate(token)
	assert.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, userID, claims.UserID)
}

func TestJWTService_MalformedToken(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	claims, err := jwtService.Validate("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
	assert.False(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestJWTService_WrongSecret(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.JWT = "a_completely_different_secret_key"
	otherService, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := otherService.Generate(uuid.New())
	require.NoError(t, err)

	claims, err := jwtService.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_ExpiryBoundary(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	userID := uuid.New()
	now := time.Now()

	// Issued 6 days into a 7-day lifetime: one day of validity remains.
	sixDaysIn := signTestToken(t, userID, now.Add(-6*24*time.Hour), now.Add(24*time.Hour))
	claims, err := jwtService.Validate(sixDaysIn)
	assert.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, userID, claims.UserID)

	// Issued 8 days ago with a 7-day lifetime: expired one day ago.
	eightDaysIn := signTestToken(t, userID, now.Add(-8*24*time.Hour), now.Add(-24*time.Hour))
	claims, err = jwtService.Validate(eightDaysIn)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
	assert.False(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := &config.Config{}

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_DefaultTokenDuration(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	// 7 days unless overridden in config.
	assert.Equal(t, time.Hour*24*7, jwtService.TokenDuration())
}

func TestJWTService_ConfiguredTokenDuration(t *testing.T) {
	cfg := testTokenConfig()
	cfg.Auth = &config.AuthConfig{TokenTTL: time.Hour}

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, jwtService.TokenDuration())
}
