// Package memory provides an in-process IdentityRepository used by tests and
// local development. It enforces the same contract as the PostgreSQL
// implementation: email uniqueness per collection, case-insensitive lookups
// and newest-first listings.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"vendorbridge/internal/domain/entity"
	domainerrors "vendorbridge/internal/domain/errors"
	"vendorbridge/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// identityRepository keeps both collections in memory behind a single mutex.
type identityRepository struct {
	mu        sync.Mutex
	vendors   []*entity.Identity
	suppliers []*entity.Identity
	seq       int64
}

// NewIdentityRepository creates an empty in-memory repository.
func NewIdentityRepository() repository.IdentityRepository {
	return &identityRepository{}
}

// Create inserts the identity into its role's collection. Inserting a second
// identity with the same email (compared case-insensitively) into the same
// collection fails with ErrDuplicateIdentity, matching the unique index
// behavior of the SQL implementation. The mutex makes the check-and-insert
// atomic, so concurrent duplicates resolve to exactly one winner.
func (repo *identityRepository) Create(_ context.Context, identity *entity.Identity) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	collection, err := repo.collection(identity.Role)
	if err != nil {
		return err
	}

	for _, existing := range *collection {
		if strings.EqualFold(existing.Email, identity.Email) {
			return domainerrors.ErrDuplicateIdentity.WrapMessage("email already exists in this collection")
		}
	}

	if identity.ID == uuid.Nil {
		identity.ID = uuid.New()
	}

	// A monotonic offset keeps creation order observable even when inserts
	// land within the same clock tick.
	repo.seq++
	now := time.Now().Add(time.Duration(repo.seq))
	identity.CreatedAt = now
	identity.UpdatedAt = now

	*collection = append(*collection, clone(identity))

	return nil
}

// FindByEmail retrieves an identity by email within a single collection.
func (repo *identityRepository) FindByEmail(_ context.Context, role entity.Role, email string) (*entity.Identity, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	collection, err := repo.collection(role)
	if err != nil {
		return nil, err
	}

	for _, existing := range *collection {
		if strings.EqualFold(existing.Email, email) {
			return clone(existing), nil
		}
	}

	return nil, repository.ErrIdentityNotFound
}

// FindByID retrieves an identity by id, vendors first.
func (repo *identityRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Identity, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.vendors {
		if existing.ID == id {
			return clone(existing), nil
		}
	}
	for _, existing := range repo.suppliers {
		if existing.ID == id {
			return clone(existing), nil
		}
	}

	return nil, repository.ErrIdentityNotFound
}

// List returns the collection newest-first.
func (repo *identityRepository) List(_ context.Context, role entity.Role) ([]*entity.Identity, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	collection, err := repo.collection(role)
	if err != nil {
		return nil, err
	}

	listed := make([]*entity.Identity, 0, len(*collection))
	for i := len(*collection) - 1; i >= 0; i-- {
		listed = append(listed, clone((*collection)[i]))
	}

	return listed, nil
}

// Update replaces the stored identity matched by id within its collection.
func (repo *identityRepository) Update(_ context.Context, identity *entity.Identity) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	collection, err := repo.collection(identity.Role)
	if err != nil {
		return err
	}

	for i, existing := range *collection {
		if existing.ID == identity.ID {
			identity.CreatedAt = existing.CreatedAt
			identity.UpdatedAt = time.Now()
			(*collection)[i] = clone(identity)

			return nil
		}
	}

	return repository.ErrIdentityNotFound
}

func (repo *identityRepository) collection(role entity.Role) (*[]*entity.Identity, error) {
	switch role {
	case entity.RoleVendor:
		return &repo.vendors, nil
	case entity.RoleSupplier:
		return &repo.suppliers, nil
	default:
		return nil, errors.Errorf("unknown identity role: %q", role)
	}
}

// clone copies the identity so callers never share memory with the store.
func clone(identity *entity.Identity) *entity.Identity {
	copied := *identity
	if identity.Vendor != nil {
		vendor := *identity.Vendor
		copied.Vendor = &vendor
	}
	if identity.Supplier != nil {
		supplier := *identity.Supplier
		supplier.Certifications = append([]string(nil), identity.Supplier.Certifications...)
		copied.Supplier = &supplier
	}

	return &copied
}
