package domain

// PrincipalKind differentiates staff vs fieldworker credentials.
type PrincipalKind string

const (
	KindStaff       PrincipalKind = "STAFF"
	KindFieldworker PrincipalKind = "FIELDWORKER"
)

// Valid reports whether the kind is one of the known values.
func (k PrincipalKind) Valid() bool {
	return k == KindStaff || k == KindFieldworker
}

// Role is a permission level within a principal kind.
type Role string

const (
	StaffRoleMember   Role = "MEMBER"
	StaffRoleElevated Role = "ELEVATED"

	FieldRoleWorker   Role = "WORKER"
	FieldRoleCrewLead Role = "CREW_LEAD"
)

// RolesForKind lists the roles valid for a given kind.
func RolesForKind(kind PrincipalKind) []Role {
	switch kind {
	case KindStaff:
		return []Role{StaffRoleMember, StaffRoleElevated}
	case KindFieldworker:
		return []Role{FieldRoleWorker, FieldRoleCrewLead}
	default:
		return nil
	}
}

// ValidRole reports whether role belongs to kind.
func ValidRole(kind PrincipalKind, role Role) bool {
	for _, r := range RolesForKind(kind) {
		if r == role {
			return true
		}
	}
	return false
}

// Principal is the normalized authenticated identity resolved from a token.
// A Principal never exists without a TenantID; missing tenant is a decode
// failure upstream, never an empty field here.
type Principal struct {
	Kind        PrincipalKind
	ID          string
	TenantID    string
	Role        Role
	DisplayName string
	Locale      string
}
