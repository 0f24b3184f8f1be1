// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"vendorbridge/internal/domain/entity"
	domainerrors "vendorbridge/internal/domain/errors"
	"vendorbridge/internal/domain/repository"
	"vendorbridge/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// identityRepository implements the repository.IdentityRepository interface using GORM.
// Vendors and suppliers live in two independent tables; the role on the
// entity routes every operation to the right one.
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository is the constructor for identityRepository.
// It returns the repository as a repository.IdentityRepository interface, adhering to dependency inversion.
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &identityRepository{db: db}
}

// Create persists a new identity into its role's table. The table's unique
// email index is the authority for duplicate detection: a constraint
// violation (including one lost to a concurrent signup race) is converted to
// ErrDuplicateIdentity, never retried.
func (repo *identityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	switch identity.Role {
	case entity.RoleVendor:
		vendorM := fromVendorDomain(identity)
		if err := repo.db.WithContext(ctx).Create(vendorM).Error; err != nil {
			return translateCreateError(err)
		}
		identity.ID = vendorM.ID
		identity.CreatedAt = vendorM.CreatedAt
		identity.UpdatedAt = vendorM.UpdatedAt

		return nil
	case entity.RoleSupplier:
		supplierM := fromSupplierDomain(identity)
		if err := repo.db.WithContext(ctx).Create(supplierM).Error; err != nil {
			return translateCreateError(err)
		}
		identity.ID = supplierM.ID
		identity.CreatedAt = supplierM.CreatedAt
		identity.UpdatedAt = supplierM.UpdatedAt

		return nil
	default:
		return errors.Errorf("unknown identity role: %q", identity.Role)
	}
}

// FindByEmail retrieves a single identity by email, case-insensitively,
// scoped to the given role's table only. The sibling table is never consulted.
func (repo *identityRepository) FindByEmail(ctx context.Context, role entity.Role, email string) (*entity.Identity, error) {
	switch role {
	case entity.RoleVendor:
		var vendorM model.VendorModel
		err := repo.db.WithContext(ctx).
			Where("LOWER(email) = LOWER(?)", email).
			First(&vendorM).Error
		if err != nil {
			return nil, translateFindError(err, "failed to find vendor by email")
		}

		return toVendorDomain(&vendorM), nil
	case entity.RoleSupplier:
		var supplierM model.SupplierModel
		err := repo.db.WithContext(ctx).
			Where("LOWER(email) = LOWER(?)", email).
			First(&supplierM).Error
		if err != nil {
			return nil, translateFindError(err, "failed to find supplier by email")
		}

		return toSupplierDomain(&supplierM), nil
	default:
		return nil, errors.Errorf("unknown identity role: %q", role)
	}
}

// FindByID retrieves an identity by id. The token carries no role, so the
// vendor table is checked first, then the supplier table.
func (repo *identityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	var vendorM model.VendorModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&vendorM).Error
	if err == nil {
		return toVendorDomain(&vendorM), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to find vendor by id")
	}

	var supplierM model.SupplierModel
	err = repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&supplierM).Error
	if err != nil {
		return nil, translateFindError(err, "failed to find supplier by id")
	}

	return toSupplierDomain(&supplierM), nil
}

// List returns all identities in the given role's table, newest-first.
func (repo *identityRepository) List(ctx context.Context, role entity.Role) ([]*entity.Identity, error) {
	switch role {
	case entity.RoleVendor:
		var vendorModels []*model.VendorModel
		err := repo.db.WithContext(ctx).
			Order("created_at DESC").
			Find(&vendorModels).Error
		if err != nil {
			return nil, errors.Wrap(err, "failed to list vendors")
		}

		identities := make([]*entity.Identity, 0, len(vendorModels))
		for _, vendorM := range vendorModels {
			identities = append(identities, toVendorDomain(vendorM))
		}

		return identities, nil
	case entity.RoleSupplier:
		var supplierModels []*model.SupplierModel
		err := repo.db.WithContext(ctx).
			Order("created_at DESC").
			Find(&supplierModels).Error
		if err != nil {
			return nil, errors.Wrap(err, "failed to list suppliers")
		}

		identities := make([]*entity.Identity, 0, len(supplierModels))
		for _, supplierM := range supplierModels {
			identities = append(identities, toSupplierDomain(supplierM))
		}

		return identities, nil
	default:
		return nil, errors.Errorf("unknown identity role: %q", role)
	}
}

// Update modifies an existing identity in its role's table.
func (repo *identityRepository) Update(ctx context.Context, identity *entity.Identity) error {
	switch identity.Role {
	case entity.RoleVendor:
		vendorM := fromVendorDomain(identity)
		vendorM.CreatedAt = identity.CreatedAt
		if err := repo.db.WithContext(ctx).Save(vendorM).Error; err != nil {
			return translateUpdateError(err)
		}
		identity.UpdatedAt = vendorM.UpdatedAt

		return nil
	case entity.RoleSupplier:
		supplierM := fromSupplierDomain(identity)
		supplierM.CreatedAt = identity.CreatedAt
		if err := repo.db.WithContext(ctx).Save(supplierM).Error; err != nil {
			return translateUpdateError(err)
		}
		identity.UpdatedAt = supplierM.UpdatedAt

		return nil
	default:
		return errors.Errorf("unknown identity role: %q", identity.Role)
	}
}

// translateCreateError converts PostgreSQL errors raised on insert to domain errors.
func translateCreateError(err error) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrDuplicateIdentity.WrapMessage("email already exists in this collection")
	}
	if isNotNullConstraintViolation(err) {
		return domainerrors.ErrIdentityCreationFailed.WrapMessage("missing required identity information")
	}

	return domainerrors.NewDatabaseExecuteError(err, "failed to create identity")
}

// translateUpdateError converts PostgreSQL errors raised on save to domain errors.
func translateUpdateError(err error) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrDuplicateIdentity.WrapMessage("email already exists in this collection")
	}
	if isNotNullConstraintViolation(err) {
		return domainerrors.ErrIdentityUpdateFailed.WrapMessage("missing required identity information")
	}

	return domainerrors.NewDatabaseExecuteError(err, "failed to update identity")
}

// translateFindError maps a record-not-found to the repository sentinel.
func translateFindError(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrIdentityNotFound
	}

	return errors.Wrap(err, message)
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toVendorDomain converts a GORM VendorModel to a domain Identity entity.
func toVendorDomain(data *model.VendorModel) *entity.Identity {
	if data == nil {
		return nil
	}

	return &entity.Identity{
		ID:           data.ID,
		Role:         entity.RoleVendor,
		Name:         data.Name,
		Email:        data.Email,
		Phone:        data.Phone,
		PasswordHash: data.PasswordHash,
		IsActive:     data.IsActive,
		IsVerified:   data.IsVerified,
		Vendor: &entity.VendorProfile{
			BusinessName: data.BusinessName,
			BusinessType: data.BusinessType,
			GSTNumber:    data.GSTNumber,
		},
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromVendorDomain converts a domain Identity entity to a GORM VendorModel for persistence.
func fromVendorDomain(data *entity.Identity) *model.VendorModel {
	if data == nil {
		return nil
	}

	vendorM := &model.VendorModel{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		Phone:        data.Phone,
		PasswordHash: data.PasswordHash,
		IsActive:     data.IsActive,
		IsVerified:   data.IsVerified,
	}
	if data.Vendor != nil {
		vendorM.BusinessName = data.Vendor.BusinessName
		vendorM.BusinessType = data.Vendor.BusinessType
		vendorM.GSTNumber = data.Vendor.GSTNumber
	}

	return vendorM
}

// toSupplierDomain converts a GORM SupplierModel to a domain Identity entity.
func toSupplierDomain(data *model.SupplierModel) *entity.Identity {
	if data == nil {
		return nil
	}

	return &entity.Identity{
		ID:           data.ID,
		Role:         entity.RoleSupplier,
		Name:         data.Name,
		Email:        data.Email,
		Phone:        data.Phone,
		PasswordHash: data.PasswordHash,
		IsActive:     data.IsActive,
		IsVerified:   data.IsVerified,
		Supplier: &entity.SupplierProfile{
			CompanyName:    data.CompanyName,
			SupplierType:   entity.SupplierTypeOrDefault(data.SupplierType),
			LicenseNumber:  data.LicenseNumber,
			Certifications: data.Certifications,
		},
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromSupplierDomain converts a domain Identity entity to a GORM SupplierModel.
func fromSupplierDomain(data *entity.Identity) *model.SupplierModel {
	if data == nil {
		return nil
	}

	supplierM := &model.SupplierModel{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		Phone:        data.Phone,
		PasswordHash: data.PasswordHash,
		IsActive:     data.IsActive,
		IsVerified:   data.IsVerified,
		SupplierType: entity.SupplierTypeOther.String(),
	}
	if data.Supplier != nil {
		supplierM.CompanyName = data.Supplier.CompanyName
		supplierM.SupplierType = entity.SupplierTypeOrDefault(data.Supplier.SupplierType.String()).String()
		supplierM.LicenseNumber = data.Supplier.LicenseNumber
		supplierM.Certifications = data.Supplier.Certifications
	}

	return supplierM
}
