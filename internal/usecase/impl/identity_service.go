// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"vendorbridge/config"
	deliverycontext "vendorbridge/internal/delivery/context"
	"vendorbridge/internal/domain/entity"
	domainerrors "vendorbridge/internal/domain/errors"
	"vendorbridge/internal/domain/repository"
	"vendorbridge/internal/domain/service"
	"vendorbridge/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	identities   repository.IdentityRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// IdentityServiceParams holds dependencies for identityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	Identities   repository.IdentityRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewIdentityService is the constructor for identityService. It receives all dependencies as interfaces.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	return &identityService{
		identities:   params.Identities,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *identityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup orchestrates the complete registration process: normalize, pre-check
// the target collection for the email, hash the password, persist, and issue
// a token. Only the role's own collection is checked; the same email may
// register once as a vendor and once as a supplier.
func (srv *identityService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("role", input.Role.String()), slog.String("email", email))

	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	// Fast-path duplicate check. The store's unique index remains the
	// authority: a concurrent signup that wins the race surfaces as a
	// constraint violation on Create and is converted to the same error.
	_, err := srv.identities.FindByEmail(ctx, input.Role, email)
	if err == nil {
		return nil, domainerrors.ErrDuplicateIdentity.WrapMessage("registration failed")
	}
	if !errors.Is(err, repository.ErrIdentityNotFound) {
		return nil, errors.Wrap(err, "failed to check for existing identity")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	newIdentity := buildNewIdentity(input, email, hashedPassword)

	if err := srv.identities.Create(ctx, newIdentity); err != nil {
		srv.log(ctx).Warn("Failed to create identity", slog.String("email", email), slog.Any("error", err))

		return nil, errors.WithStack(err)
	}

	token, err := srv.tokenService.Generate(newIdentity.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Debug("Identity registered successfully", slog.String("identityID", newIdentity.ID.String()))

	return &usecase.SignupOutput{Identity: newIdentity, Token: token}, nil
}

// Signin orchestrates the authentication process. The vendor collection is
// checked first; if the email somehow exists in both, the vendor record wins.
// Unknown email and wrong password fail with the identical error so callers
// cannot enumerate registered addresses.
func (srv *identityService) Signin(ctx context.Context, input *usecase.SigninInput) (*usecase.SigninOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting signin", slog.String("email", email))

	identity, err := srv.lookupByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("signin failed")
		}

		return nil, errors.Wrap(err, "failed to look up identity")
	}

	if !identity.IsActive {
		return nil, domainerrors.ErrAccountDeactivated.WrapMessage("signin failed")
	}

	if !srv.hasher.Check(input.Password, identity.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("signin failed")
	}

	token, err := srv.tokenService.Generate(identity.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Debug("Signin successful", slog.String("identityID", identity.ID.String()))

	return &usecase.SigninOutput{Identity: identity, Token: token}, nil
}

// ListUsers merges both collections newest-first with per-collection counts.
func (srv *identityService) ListUsers(ctx context.Context) (*usecase.ListUsersOutput, error) {
	vendors, err := srv.identities.List(ctx, entity.RoleVendor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vendors")
	}

	suppliers, err := srv.identities.List(ctx, entity.RoleSupplier)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list suppliers")
	}

	users := make([]*entity.Identity, 0, len(vendors)+len(suppliers))
	users = append(users, vendors...)
	users = append(users, suppliers...)
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	return &usecase.ListUsersOutput{
		Users:         users,
		VendorCount:   len(vendors),
		SupplierCount: len(suppliers),
	}, nil
}

// GetIdentity loads a single identity by id, across both collections.
func (srv *identityService) GetIdentity(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	identity, err := srv.identities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrIdentityNotFound.WrapMessage("identity lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find identity by id")
	}

	return identity, nil
}

// lookupByEmail resolves an email across both collections, vendor first.
func (srv *identityService) lookupByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	identity, err := srv.identities.FindByEmail(ctx, entity.RoleVendor, email)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, repository.ErrIdentityNotFound) {
		return nil, err
	}

	return srv.identities.FindByEmail(ctx, entity.RoleSupplier, email)
}

// buildNewIdentity constructs the identity entity for the requested role,
// attaching only the matching profile payload.
func buildNewIdentity(input *usecase.SignupInput, email, hashedPassword string) *entity.Identity {
	identity := &entity.Identity{
		Role:         input.Role,
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	switch input.Role {
	case entity.RoleVendor:
		identity.Vendor = &entity.VendorProfile{
			BusinessName: strings.TrimSpace(input.BusinessName),
			BusinessType: strings.TrimSpace(input.BusinessType),
			GSTNumber:    strings.TrimSpace(input.GSTNumber),
		}
	case entity.RoleSupplier:
		identity.Supplier = &entity.SupplierProfile{
			CompanyName:    strings.TrimSpace(input.CompanyName),
			SupplierType:   entity.SupplierTypeOrDefault(input.SupplierType),
			LicenseNumber:  strings.TrimSpace(input.LicenseNumber),
			Certifications: trimAll(input.Certifications),
		}
	}

	return identity
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			trimmed = append(trimmed, s)
		}
	}

	return trimmed
}
