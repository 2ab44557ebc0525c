package domain

import "time"

// StaffMember models an administrative staff account in the directory.
type StaffMember struct {
	ID           string
	TenantID     string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Locale       string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal builds the normalized identity for this staff member.
func (s *StaffMember) Principal() *Principal {
	return &Principal{
		Kind:        KindStaff,
		ID:          s.ID,
		TenantID:    s.TenantID,
		Role:        s.Role,
		DisplayName: s.Name,
		Locale:      s.Locale,
	}
}
