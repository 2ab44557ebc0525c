package auth

import (
	"fmt"

	"github.com/spec-kit/fieldsafe-service/internal/domain"
)

// roleGrants is the explicit role hierarchy: each held role maps to the set
// of required roles it satisfies. New roles grant nothing until added here,
// so extending the model can never silently widen access.
var roleGrants = map[domain.Role][]domain.Role{
	domain.StaffRoleMember:   {domain.StaffRoleMember},
	domain.StaffRoleElevated: {domain.StaffRoleElevated, domain.StaffRoleMember},
	domain.FieldRoleWorker:   {domain.FieldRoleWorker},
	domain.FieldRoleCrewLead: {domain.FieldRoleCrewLead, domain.FieldRoleWorker},
}

// RoleSatisfies reports whether a held role meets a required role under the
// hierarchy table.
func RoleSatisfies(held, required domain.Role) bool {
	for _, granted := range roleGrants[held] {
		if granted == required {
			return true
		}
	}
	return false
}

// Authorize checks a principal against a required kind and role set. An empty
// role set admits any role of the required kind. The guard proves only "who";
// tenant scoping of data access is the caller's mandatory counterpart: every
// downstream lookup keyed by a request-supplied id must also filter by
// principal.TenantID.
func Authorize(principal *domain.Principal, requiredKind domain.PrincipalKind, requiredRoles ...domain.Role) error {
	if principal == nil {
		return ErrForbidden
	}
	if principal.Kind != requiredKind {
		return fmt.Errorf("%w: %s required", ErrForbidden, requiredKind)
	}
	if len(requiredRoles) == 0 {
		return nil
	}
	for _, required := range requiredRoles {
		if RoleSatisfies(principal.Role, required) {
			return nil
		}
	}
	return fmt.Errorf("%w: insufficient role", ErrForbidden)
}
