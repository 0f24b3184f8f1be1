package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vendorbridge/config"
	"vendorbridge/internal/domain/entity"
	domainerrors "vendorbridge/internal/domain/errors"
	"vendorbridge/internal/domain/repository"
	"vendorbridge/internal/domain/service"
	"vendorbridge/internal/infra/auth"
	"vendorbridge/internal/infra/persistence/memory"
	"vendorbridge/internal/usecase"
	"vendorbridge/internal/usecase/impl"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const authTestSecret = "auth-middleware-test-secret"

type authTestEnv struct {
	middleware *AuthMiddleware
	svc        usecase.IdentityUsecase
	tokenSvc   service.TokenService
	repo       repository.IdentityRepository
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{BcryptCost: bcrypt.MinCost}
	cfg.SecretKey.JWT = authTestSecret

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := memory.NewIdentityRepository()
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	svc := impl.NewIdentityService(impl.IdentityServiceParams{
		Identities:   repo,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokenSvc,
		Config:       cfg,
		Logger:       logger,
	})

	return &authTestEnv{
		middleware: NewAuthMiddleware(tokenSvc, svc, logger),
		svc:        svc,
		tokenSvc:   tokenSvc,
		repo:       repo,
	}
}

func (env *authTestEnv) signupVendor(t *testing.T) *usecase.SignupOutput {
	t.Helper()

	output, err := env.svc.Signup(context.Background(), &usecase.SignupInput{
		Name:     "Ana Lee",
		Email:    "ana@example.com",
		Phone:    "+14155550123",
		Password: "s3cret-pass",
		Role:     entity.RoleVendor,
	})
	require.NoError(t, err)

	return output
}

// invoke runs the Authenticate middleware against a request carrying the
// given Authorization header and reports the resulting error plus whether the
// wrapped handler ran.
func invoke(t *testing.T, m *AuthMiddleware, authHeader string) (err error, nextCalled bool, c echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c = e.NewContext(req, rec)

	handler := m.Authenticate(func(echo.Context) error {
		nextCalled = true

		return nil
	})

	err = handler(c)

	return err, nextCalled, c
}

func TestAuthenticate_MissingToken(t *testing.T) {
	env := newAuthTestEnv(t)

	err, nextCalled, _ := invoke(t, env.middleware, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenMissing))
	assert.False(t, nextCalled)

	err, nextCalled, _ = invoke(t, env.middleware, "Basic dXNlcjpwYXNz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenMissing))
	assert.False(t, nextCalled)
}

func TestAuthenticate_MalformedToken(t *testing.T) {
	env := newAuthTestEnv(t)

	err, nextCalled, _ := invoke(t, env.middleware, "Bearer not.a.token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
	assert.False(t, nextCalled)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	env := newAuthTestEnv(t)
	signup := env.signupVendor(t)

	now := time.Now()
	claims := &service.Claims{
		UserID: signup.Identity.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-24 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(authTestSecret))
	require.NoError(t, err)

	authErr, nextCalled, _ := invoke(t, env.middleware, "Bearer "+expired)
	require.Error(t, authErr)
	assert.True(t, errors.Is(authErr, domainerrors.ErrTokenExpired))
	assert.False(t, errors.Is(authErr, domainerrors.ErrTokenInvalid))
	assert.False(t, nextCalled)
}

func TestAuthenticate_UnknownSubject(t *testing.T) {
	env := newAuthTestEnv(t)

	orphan, err := env.tokenSvc.Generate(uuid.New())
	require.NoError(t, err)

	authErr, nextCalled, _ := invoke(t, env.middleware, "Bearer "+orphan)
	require.Error(t, authErr)
	assert.True(t, errors.Is(authErr, domainerrors.ErrTokenInvalid))
	assert.False(t, nextCalled)
}

func TestAuthenticate_DeactivatedAccount(t *testing.T) {
	env := newAuthTestEnv(t)
	signup := env.signupVendor(t)

	deactivated := signup.Identity
	deactivated.IsActive = false
	require.NoError(t, env.repo.Update(context.Background(), deactivated))

	authErr, nextCalled, _ := invoke(t, env.middleware, "Bearer "+signup.Token)
	require.Error(t, authErr)
	assert.True(t, errors.Is(authErr, domainerrors.ErrAccountDeactivated))
	assert.False(t, nextCalled)
}

func TestAuthenticate_ValidTokenSetsIdentity(t *testing.T) {
	env := newAuthTestEnv(t)
	signup := env.signupVendor(t)

	err, nextCalled, c := invoke(t, env.middleware, "Bearer "+signup.Token)
	require.NoError(t, err)
	assert.True(t, nextCalled)

	identity, ok := c.Get(ContextKeyIdentity).(*entity.Identity)
	require.True(t, ok)
	assert.Equal(t, signup.Identity.ID, identity.ID)
	assert.Equal(t, entity.RoleVendor, identity.Role)

	userID, ok := c.Get(ContextKeyUserID).(uuid.UUID)
	require.True(t, ok)
	assert.Equal(t, signup.Identity.ID, userID)
}
