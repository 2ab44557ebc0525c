package dto

import (
	"time"

	"github.com/spec-kit/fieldsafe-service/internal/domain"
)

// LoginRequest payload for both login endpoints.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PrincipalResponse is the serialized authenticated identity.
type PrincipalResponse struct {
	Kind        domain.PrincipalKind `json:"kind"`
	ID          string               `json:"id"`
	TenantID    string               `json:"tenant_id"`
	Role        domain.Role          `json:"role"`
	DisplayName string               `json:"display_name"`
	Locale      string               `json:"locale"`
}

// NewPrincipalResponse maps a principal into its response shape.
func NewPrincipalResponse(p *domain.Principal) PrincipalResponse {
	return PrincipalResponse{
		Kind:        p.Kind,
		ID:          p.ID,
		TenantID:    p.TenantID,
		Role:        p.Role,
		DisplayName: p.DisplayName,
		Locale:      p.Locale,
	}
}
