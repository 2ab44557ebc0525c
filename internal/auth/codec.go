package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/fieldsafe-service/internal/domain"
)

// Codec issues and validates signed identity tokens. TTL policy belongs to
// the caller; the codec only stamps and verifies.
type Codec struct {
	secret []byte
}

// NewCodec builds a codec around the server signing secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// PrincipalClaims is the serialized identity embedded in a token.
type PrincipalClaims struct {
	Kind        domain.PrincipalKind `json:"kind"`
	ID          string               `json:"id"`
	TenantID    string               `json:"tenant_id"`
	Role        domain.Role          `json:"role"`
	DisplayName string               `json:"display_name,omitempty"`
	Locale      string               `json:"locale,omitempty"`
}

// Claims describes the JWT payload. KindMarker duplicates the principal kind
// at the top level so a token can never satisfy a check for a kind it does
// not assert, even if the nested object were tampered into shape.
type Claims struct {
	Principal  *PrincipalClaims     `json:"principal"`
	KindMarker domain.PrincipalKind `json:"knd"`
	jwt.RegisteredClaims
}

// Issue signs a token carrying the principal, valid for ttl from now.
func (c *Codec) Issue(principal *domain.Principal, ttl time.Duration) (string, time.Time, error) {
	if principal == nil {
		return "", time.Time{}, errors.New("nil principal")
	}
	if principal.TenantID == "" {
		return "", time.Time{}, errors.New("principal missing tenant id")
	}
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Principal: &PrincipalClaims{
			Kind:        principal.Kind,
			ID:          principal.ID,
			TenantID:    principal.TenantID,
			Role:        principal.Role,
			DisplayName: principal.DisplayName,
			Locale:      principal.Locale,
		},
		KindMarker: principal.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Decode verifies signature and expiry and returns the normalized principal.
// Any missing required field is a failure, never a defaulted Principal.
func (c *Codec) Decode(tokenStr string) (*domain.Principal, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: malformed claims", ErrInvalidCredential)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing expiry", ErrInvalidCredential)
	}
	if claims.Principal == nil {
		return nil, fmt.Errorf("%w: missing principal", ErrInvalidCredential)
	}
	if !claims.KindMarker.Valid() || claims.KindMarker != claims.Principal.Kind {
		return nil, fmt.Errorf("%w: kind marker mismatch", ErrInvalidCredential)
	}
	if claims.Principal.ID == "" {
		return nil, fmt.Errorf("%w: missing principal id", ErrInvalidCredential)
	}
	if claims.Principal.TenantID == "" {
		return nil, fmt.Errorf("%w: missing tenant id", ErrInvalidCredential)
	}
	if !domain.ValidRole(claims.Principal.Kind, claims.Principal.Role) {
		return nil, fmt.Errorf("%w: invalid role for kind", ErrInvalidCredential)
	}

	return &domain.Principal{
		Kind:        claims.Principal.Kind,
		ID:          claims.Principal.ID,
		TenantID:    claims.Principal.TenantID,
		Role:        claims.Principal.Role,
		DisplayName: claims.Principal.DisplayName,
		Locale:      claims.Principal.Locale,
	}, nil
}
