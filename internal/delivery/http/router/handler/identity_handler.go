// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"vendorbridge/internal/delivery/http/middleware"
	"vendorbridge/internal/delivery/http/response"
	"vendorbridge/internal/domain/entity"
	domainerrors "vendorbridge/internal/domain/errors"
	"vendorbridge/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// IdentityHandler holds dependencies for registration and authentication handlers.
type IdentityHandler struct {
	uc     usecase.IdentityUsecase
	logger *slog.Logger
}

// NewIdentityHandler is the constructor for IdentityHandler, injected by Fx.
func NewIdentityHandler(uc usecase.IdentityUsecase, logger *slog.Logger) *IdentityHandler {
	return &IdentityHandler{
		uc:     uc,
		logger: logger,
	}
}

// signupRequest is the registration payload. Role-specific fields are
// optional; fields belonging to the other role are ignored.
type signupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=vendor supplier"`

	// Vendor profile fields
	BusinessName string `json:"businessName" validate:"omitempty,max=100"`
	BusinessType string `json:"businessType" validate:"omitempty,max=50"`
	GSTNumber    string `json:"gstNumber" validate:"omitempty,gst"`

	// Supplier profile fields
	CompanyName    string   `json:"companyName" validate:"omitempty,max=100"`
	SupplierType   string   `json:"supplierType" validate:"omitempty,oneof=raw_materials finished_goods services equipment other"`
	LicenseNumber  string   `json:"licenseNumber" validate:"omitempty,max=50"`
	Certifications []string `json:"certifications" validate:"omitempty,dive,max=100"`
}

// signinRequest is the authentication payload.
type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authView is the payload returned by signup and signin.
type authView struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

// userView is the public representation of an identity. The password hash
// never appears here.
type userView struct {
	ID         string `json:"id"`
	Role       string `json:"role"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	IsActive   bool   `json:"isActive"`
	IsVerified bool   `json:"isVerified"`

	BusinessName string `json:"businessName,omitempty"`
	BusinessType string `json:"businessType,omitempty"`
	GSTNumber    string `json:"gstNumber,omitempty"`

	CompanyName    string   `json:"companyName,omitempty"`
	SupplierType   string   `json:"supplierType,omitempty"`
	LicenseNumber  string   `json:"licenseNumber,omitempty"`
	Certifications []string `json:"certifications,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// usersView is the payload returned by the user listing.
type usersView struct {
	Users  []userView `json:"users"`
	Counts countsView `json:"counts"`
}

type countsView struct {
	Vendors   int `json:"vendors"`
	Suppliers int `json:"suppliers"`
	Total     int `json:"total"`
}

// Signup handles the registration request for both roles.
func (h *IdentityHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Signup(c.Request().Context(), &usecase.SignupInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Password:       req.Password,
		Role:           entity.Role(req.Role),
		BusinessName:   req.BusinessName,
		BusinessType:   req.BusinessType,
		GSTNumber:      req.GSTNumber,
		CompanyName:    req.CompanyName,
		SupplierType:   req.SupplierType,
		LicenseNumber:  req.LicenseNumber,
		Certifications: req.Certifications,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	payload := authView{
		User:  newUserView(output.Identity),
		Token: output.Token,
	}

	return response.Success(c, http.StatusCreated, payload, registrationMessage(output.Identity.Role))
}

// Signin handles the authentication request across both roles.
func (h *IdentityHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Signin(c.Request().Context(), &usecase.SigninInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	payload := authView{
		User:  newUserView(output.Identity),
		Token: output.Token,
	}

	return response.Success(c, http.StatusOK, payload, "Login successful")
}

// ListUsers returns every registered vendor and supplier, newest-first,
// with per-role counts.
func (h *IdentityHandler) ListUsers(c echo.Context) error {
	output, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	users := make([]userView, 0, len(output.Users))
	for _, identity := range output.Users {
		users = append(users, newUserView(identity))
	}

	payload := usersView{
		Users: users,
		Counts: countsView{
			Vendors:   output.VendorCount,
			Suppliers: output.SupplierCount,
			Total:     output.VendorCount + output.SupplierCount,
		},
	}

	return response.Success(c, http.StatusOK, payload, "Users retrieved successfully")
}

// Me returns the authenticated identity resolved by the auth middleware.
func (h *IdentityHandler) Me(c echo.Context) error {
	identityVal := c.Get(middleware.ContextKeyIdentity)
	identity, ok := identityVal.(*entity.Identity)
	if !ok {
		return domainerrors.ErrTokenInvalid.WrapMessage("no authenticated identity on context")
	}

	return response.Success(c, http.StatusOK, map[string]any{"user": newUserView(identity)}, "Profile retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// newUserView maps a domain identity to its public representation.
func newUserView(identity *entity.Identity) userView {
	view := userView{
		ID:         identity.ID.String(),
		Role:       identity.Role.String(),
		Name:       identity.Name,
		Email:      identity.Email,
		Phone:      identity.Phone,
		IsActive:   identity.IsActive,
		IsVerified: identity.IsVerified,
		CreatedAt:  identity.CreatedAt,
		UpdatedAt:  identity.UpdatedAt,
	}

	if identity.Vendor != nil {
		view.BusinessName = identity.Vendor.BusinessName
		view.BusinessType = identity.Vendor.BusinessType
		view.GSTNumber = identity.Vendor.GSTNumber
	}

	if identity.Supplier != nil {
		view.CompanyName = identity.Supplier.CompanyName
		view.SupplierType = identity.Supplier.SupplierType.String()
		view.LicenseNumber = identity.Supplier.LicenseNumber
		view.Certifications = identity.Supplier.Certifications
	}

	return view
}

func registrationMessage(role entity.Role) string {
	if role == entity.RoleSupplier {
		return "Supplier registered successfully"
	}

	return "Vendor registered successfully"
}
