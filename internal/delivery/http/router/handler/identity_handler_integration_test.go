package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"vendorbridge/config"
	"vendorbridge/internal/delivery/http/middleware"
	"vendorbridge/internal/delivery/http/router"
	"vendorbridge/internal/delivery/http/router/handler"
	"vendorbridge/internal/delivery/http/validator"
	"vendorbridge/internal/infra/auth"
	"vendorbridge/internal/infra/persistence/memory"
	"vendorbridge/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// apiResponse mirrors the wire envelope for assertions.
type apiResponse struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// newTestServer wires the full HTTP stack against the in-memory store.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{BcryptCost: bcrypt.MinCost}
	cfg.SecretKey.JWT = "integration-test-secret"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo := memory.NewIdentityRepository()
	hasher := auth.NewBcryptHasher(cfg)
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	uc := impl.NewIdentityService(impl.IdentityServiceParams{
		Identities:   repo,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Config:       cfg,
		Logger:       logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger, cfg).HandleHTTPError
	e.Use(middleware.NewLoggerMiddleware(logger, cfg).Handle)

	r := router.NewRouter(router.RouterParams{
		IdentityHandler: handler.NewIdentityHandler(uc, logger),
		AuthMiddleware:  middleware.NewAuthMiddleware(tokenSvc, uc, logger),
	})
	r.RegisterRoutes(e)

	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any, token string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var parsed apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))

	return rec, parsed
}

func vendorSignupBody() map[string]any {
	return map[string]any{
		"name":         "Ana Lee",
		"email":        "ana@example.com",
		"phone":        "+14155550123",
		"password":     "s3cret-pass",
		"role":         "vendor",
		"businessName": "Lee Produce",
		"businessType": "wholesale",
	}
}

func TestAuthFlow_VendorLifecycle(t *testing.T) {
	e := newTestServer(t)

	// Registration succeeds and never echoes the password.
	rec, resp := doJSON(t, e, http.MethodPost, "/api/auth/signup", vendorSignupBody(), "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	assert.NotContains(t, rec.Body.String(), "s3cret-pass")
	assert.NotContains(t, rec.Body.String(), "password")

	var signupData struct {
		User struct {
			ID    string `json:"id"`
			Role  string `json:"role"`
			Email string `json:"email"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &signupData))
	assert.Equal(t, "vendor", signupData.User.Role)
	assert.Equal(t, "ana@example.com", signupData.User.Email)
	assert.NotEmpty(t, signupData.Token)

	// A second registration with the same email and role conflicts.
	rec, resp = doJSON(t, e, http.MethodPost, "/api/auth/signup", vendorSignupBody(), "")
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DUPLICATE_IDENTITY", resp.Error.Code)

	// Wrong password is rejected with the generic credentials message.
	rec, resp = doJSON(t, e, http.MethodPost, "/api/auth/signin", map[string]any{
		"email":    "ana@example.com",
		"password": "not-the-password",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", resp.Message)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)

	// The correct password yields a fresh token.
	rec, resp = doJSON(t, e, http.MethodPost, "/api/auth/signin", map[string]any{
		"email":    "Ana@Example.com",
		"password": "s3cret-pass",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var signinData struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &signinData))
	assert.Equal(t, signupData.User.ID, signinData.User.ID)
	require.NotEmpty(t, signinData.Token)

	// The listing reflects the registered vendor.
	rec, resp = doJSON(t, e, http.MethodGet, "/api/auth/users", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var usersData struct {
		Users  []json.RawMessage `json:"users"`
		Counts struct {
			Vendors   int `json:"vendors"`
			Suppliers int `json:"suppliers"`
			Total     int `json:"total"`
		} `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &usersData))
	assert.GreaterOrEqual(t, usersData.Counts.Vendors, 1)
	assert.Equal(t, usersData.Counts.Vendors+usersData.Counts.Suppliers, usersData.Counts.Total)
	assert.Len(t, usersData.Users, usersData.Counts.Total)

	// The token resolves back to the registered identity.
	rec, resp = doJSON(t, e, http.MethodGet, "/api/auth/me", nil, signinData.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var meData struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &meData))
	assert.Equal(t, signupData.User.ID, meData.User.ID)
	assert.Equal(t, "ana@example.com", meData.User.Email)
}

func TestSignup_SupplierWithProfile(t *testing.T) {
	e := newTestServer(t)

	rec, resp := doJSON(t, e, http.MethodPost, "/api/auth/signup", map[string]any{
		"name":           "Sam Patel",
		"email":          "sam@example.com",
		"phone":          "919876543210",
		"password":       "supplier-pass",
		"role":           "supplier",
		"companyName":    "Patel Logistics",
		"supplierType":   "services",
		"licenseNumber":  "LIC-42",
		"certifications": []string{"ISO9001"},
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var data struct {
		User struct {
			Role           string   `json:"role"`
			SupplierType   string   `json:"supplierType"`
			CompanyName    string   `json:"companyName"`
			Certifications []string `json:"certifications"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "supplier", data.User.Role)
	assert.Equal(t, "services", data.User.SupplierType)
	assert.Equal(t, "Patel Logistics", data.User.CompanyName)
	assert.Equal(t, []string{"ISO9001"}, data.User.Certifications)
}

func TestSignup_ValidationFailures(t *testing.T) {
	e := newTestServer(t)

	rec, resp := doJSON(t, e, http.MethodPost, "/api/auth/signup", map[string]any{
		"name":     "A",
		"email":    "not-an-email",
		"phone":    "0abc",
		"password": "tiny",
		"role":     "admin",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Validation failed", resp.Message)
	require.NotEmpty(t, resp.Errors)

	failed := make(map[string]bool, len(resp.Errors))
	for _, fieldErr := range resp.Errors {
		failed[fieldErr.Field] = true
	}
	assert.True(t, failed["name"])
	assert.True(t, failed["email"])
	assert.True(t, failed["phone"])
	assert.True(t, failed["password"])
	assert.True(t, failed["role"])
}

func TestMe_TokenHandling(t *testing.T) {
	e := newTestServer(t)

	// No token at all.
	rec, resp := doJSON(t, e, http.MethodGet, "/api/auth/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "TOKEN_MISSING", resp.Error.Code)

	// A token that was never issued by this service.
	rec, resp = doJSON(t, e, http.MethodGet, "/api/auth/me", nil, "not.a.token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "TOKEN_INVALID", resp.Error.Code)
}

func TestHealthCheck(t *testing.T) {
	e := newTestServer(t)

	rec, resp := doJSON(t, e, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
