package middleware

import (
	"log/slog"
	"strings"

	domainerrors "vendorbridge/internal/domain/errors"
	"vendorbridge/internal/domain/service"
	"vendorbridge/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContextKeyIdentity is the echo.Context key holding the authenticated identity.
const ContextKeyIdentity = "identity"

// ContextKeyUserID is the echo.Context key holding the authenticated identity's id.
const ContextKeyUserID = "userID"

// AuthMiddleware provides middleware for bearer token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	uc       usecase.IdentityUsecase
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, uc usecase.IdentityUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, uc: uc, logger: logger}
}

// Authenticate validates the bearer token, resolves its subject to a live
// identity and stores both on the context. Expired tokens are reported
// separately from malformed or mis-signed ones so clients know to sign in
// again rather than retry.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrTokenMissing
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return domainerrors.ErrTokenMissing.WrapMessage("authorization header is not a bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			if errors.Is(err, domainerrors.ErrTokenExpired) {
				m.logger.Warn("Rejected expired token", slog.String("path", c.Request().URL.Path))
			} else {
				m.logger.Warn("Rejected invalid token", slog.String("path", c.Request().URL.Path))
			}

			return err
		}

		identity, err := m.uc.GetIdentity(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrIdentityNotFound) {
				return domainerrors.ErrTokenInvalid.WrapMessage("token subject no longer exists")
			}

			return errors.WithStack(err)
		}

		if !identity.IsActive {
			return domainerrors.ErrAccountDeactivated
		}

		c.Set(ContextKeyIdentity, identity)
		c.Set(ContextKeyUserID, identity.ID)

		return next(c)
	}
}
