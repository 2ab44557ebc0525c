package dto

import (
	"time"

	"github.com/spec-kit/fieldsafe-service/internal/domain"
)

// StaffCreateRequest payload for provisioning a staff account.
type StaffCreateRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
	Locale   string      `json:"locale"`
}

// StaffUpdateRoleRequest payload for role changes.
type StaffUpdateRoleRequest struct {
	Role domain.Role `json:"role"`
}

// StaffSetActiveRequest payload for activation changes.
type StaffSetActiveRequest struct {
	Active bool `json:"active"`
}

// StaffMemberResponse is the directory view of a staff account.
type StaffMemberResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Locale    string      `json:"locale"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewStaffMemberResponse maps a staff member into its response shape.
func NewStaffMemberResponse(s *domain.StaffMember) StaffMemberResponse {
	return StaffMemberResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Role:      s.Role,
		Locale:    s.Locale,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
	}
}
