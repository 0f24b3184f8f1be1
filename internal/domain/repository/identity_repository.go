// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"vendorbridge/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrIdentityNotFound is a domain-specific error returned when an identity is not found.
var ErrIdentityNotFound = errors.New("identity not found")

// IdentityRepository defines the standard operations for the two identity
// collections. Every lookup except FindByID is scoped to a single role's
// collection; email uniqueness holds within one collection only and is
// guaranteed by the store's unique index, not by the application.
type IdentityRepository interface {
	// Create persists a new identity into its role's collection. A
	// unique-index violation on email is translated to ErrDuplicateIdentity,
	// which also resolves the race between two concurrent signups.
	Create(ctx context.Context, identity *entity.Identity) error

	// FindByEmail retrieves a single identity by email, case-insensitively,
	// scoped to the given role's collection.
	FindByEmail(ctx context.Context, role entity.Role, email string) (*entity.Identity, error)

	// FindByID retrieves an identity by id, checking the vendor collection
	// first and then the supplier collection.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error)

	// List returns all identities in the given role's collection,
	// newest-first by creation time.
	List(ctx context.Context, role entity.Role) ([]*entity.Identity, error)

	// Update modifies an existing identity in the storage, bumping UpdatedAt.
	Update(ctx context.Context, identity *entity.Identity) error
}
