package domain

import "time"

// Fieldworker models a contractor account working on job sites.
type Fieldworker struct {
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

// Principal builds the normalized identity for this fieldworker.
func (f *Fieldworker) Principal() *Principal {
	return &Principal{
		Kind:        KindFieldworker,
		ID:          f.ID,
		TenantID:    f.TenantID,
		Role:        f.Role,
		DisplayName: f.Name,
		Locale:      f.Locale,
	}
}
