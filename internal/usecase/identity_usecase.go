// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"vendorbridge/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new vendor or supplier.
// Role-specific fields are only consulted for the matching role; the rest are
// dropped silently, mirroring schema-level stripping of unknown keys.
type SignupInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     entity.Role

	// Vendor profile fields
	BusinessName string
	BusinessType string
	GSTNumber    string

	// Supplier profile fields
	CompanyName    string
	SupplierType   string
	LicenseNumber  string
	Certifications []string
}

// SigninInput defines the data required to authenticate.
type SigninInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// SignupOutput returns the newly created identity plus its bearer token.
type SignupOutput struct {
	Identity *entity.Identity
	Token    string
}

// SigninOutput returns the authenticated identity, tagged with its resolved
// role, plus a fresh bearer token.
type SigninOutput struct {
	Identity *entity.Identity
	Token    string
}

// ListUsersOutput returns both collections merged newest-first, with
// per-collection counts for the dashboard.
type ListUsersOutput struct {
	Users         []*entity.Identity
	VendorCount   int
	SupplierCount int
}

// IdentityUsecase defines the interface for registration and authentication operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type IdentityUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)
	Signin(ctx context.Context, input *SigninInput) (*SigninOutput, error)
	ListUsers(ctx context.Context) (*ListUsersOutput, error)
	GetIdentity(ctx context.Context, id uuid.UUID) (*entity.Identity, error)
}
