package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/fieldsafe-service/internal/auth"
	"github.com/spec-kit/fieldsafe-service/internal/domain"
	"github.com/spec-kit/fieldsafe-service/internal/repository"
	apperrors "github.com/spec-kit/fieldsafe-service/pkg/util"
)

// DirectoryService manages staff accounts within the actor's tenant. Every
// lookup keyed by a caller-supplied id is additionally filtered by the
// actor's tenant; the authorization guard proves "who", this service owns
// "what tenant".
type DirectoryService struct {
	staff      repository.StaffRepository
	bcryptCost int
}

// NewDirectoryService builds the service.
func NewDirectoryService(staff repository.StaffRepository, bcryptCost int) *DirectoryService {
	return &DirectoryService{staff: staff, bcryptCost: bcryptCost}
}

// CreateStaffInput carries the fields for provisioning a staff account.
type CreateStaffInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Locale   string
}

// CreateStaff provisions a staff account in the actor's tenant. The tenant is
// always the actor's own; callers cannot provision into another tenant.
func (s *DirectoryService) CreateStaff(ctx context.Context, actor *domain.Principal, input CreateStaffInput) (*domain.StaffMember, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required", nil)
	}
	if !domain.ValidRole(domain.KindStaff, input.Role) {
		return nil, apperrors.NewValidationError("unknown staff role", map[string]any{"role": input.Role})
	}

	if _, err := s.staff.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	locale := input.Locale
	if locale == "" {
		locale = "en"
	}
	member := &domain.StaffMember{
		ID:           uuid.NewString(),
		TenantID:     actor.TenantID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Locale:       locale,
		Active:       true,
	}
	if err := s.staff.Create(ctx, member); err != nil {
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

// ListStaff returns all staff members of the actor's tenant.
func (s *DirectoryService) ListStaff(ctx context.Context, actor *domain.Principal) ([]*domain.StaffMember, error) {
	return s.staff.ListByTenant(ctx, actor.TenantID)
}

// UpdateStaffRole changes a staff member's role. An elevated actor may not
// demote itself; that would risk locking the tenant out of its last elevated
// account.
func (s *DirectoryService) UpdateStaffRole(ctx context.Context, actor *domain.Principal, targetID string, newRole domain.Role) (*domain.StaffMember, error) {
	if !domain.ValidRole(domain.KindStaff, newRole) {
		return nil, apperrors.NewValidationError("unknown staff role", map[string]any{"role": newRole})
	}
	if actor.ID == targetID && newRole != domain.StaffRoleElevated {
		return nil, apperrors.NewForbidden("cannot demote own account")
	}

	target, err := s.staff.GetByIDForTenant(ctx, targetID, actor.TenantID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("staff member", nil)
		}
		return nil, apperrors.MapError(err)
	}

	target.Role = newRole
	if err := s.staff.Update(ctx, target); err != nil {
		return nil, apperrors.MapError(err)
	}
	return target, nil
}

// SetStaffActive activates or deactivates a staff member. An actor may not
// deactivate itself.
func (s *DirectoryService) SetStaffActive(ctx context.Context, actor *domain.Principal, targetID string, active bool) (*domain.StaffMember, error) {
	if actor.ID == targetID && !active {
		return nil, apperrors.NewForbidden("cannot deactivate own account")
	}

	target, err := s.staff.GetByIDForTenant(ctx, targetID, actor.TenantID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("staff member", nil)
		}
		return nil, apperrors.MapError(err)
	}

	target.Active = active
	if err := s.staff.Update(ctx, target); err != nil {
		return nil, apperrors.MapError(err)
	}
	return target, nil
}
