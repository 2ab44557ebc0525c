package service

import (
	"context"
	"time"

	"github.com/spec-kit/fieldsafe-service/internal/auth"
	"github.com/spec-kit/fieldsafe-service/internal/config"
	"github.com/spec-kit/fieldsafe-service/internal/domain"
	"github.com/spec-kit/fieldsafe-service/internal/repository"
	apperrors "github.com/spec-kit/fieldsafe-service/pkg/util"
)

// AuthService coordinates login flows and token issuance for both principal
// kinds. Tokens are stateless; logout is the client discarding the cookie.
type AuthService struct {
	staff       repository.StaffRepository
	workers     repository.FieldworkerRepository
	codec       *auth.Codec
	baseTTL     time.Duration
	extendedTTL time.Duration
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	StaffRepo       repository.StaffRepository
	FieldworkerRepo repository.FieldworkerRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		staff:       deps.StaffRepo,
		workers:     deps.FieldworkerRepo,
		codec:       auth.NewCodec(cfg.Auth.JWTSecret),
		baseTTL:     cfg.Auth.AccessTokenTTL(),
		extendedTTL: cfg.Auth.ExtendedTokenTTL(),
	}
}

// LoginStaff authenticates a staff member and issues a staff token. The
// remember flag selects the extended lifetime.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string, remember bool) (*domain.Principal, string, time.Time, error) {
	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if !staff.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	principal := staff.Principal()
	token, exp, err := s.codec.Issue(principal, s.ttl(remember))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return principal, token, exp, nil
}

// LoginFieldworker authenticates a fieldworker and issues a field token.
func (s *AuthService) LoginFieldworker(ctx context.Context, email, password string, remember bool) (*domain.Principal, string, time.Time, error) {
	worker, err := s.workers.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if !worker.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(worker.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	principal := worker.Principal()
	token, exp, err := s.codec.Issue(principal, s.ttl(remember))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return principal, token, exp, nil
}

func (s *AuthService) ttl(remember bool) time.Duration {
	if remember {
		return s.extendedTTL
	}
	return s.baseTTL
}

// Codec exposes the underlying codec for middleware and session wiring.
func (s *AuthService) Codec() *auth.Codec {
	return s.codec
}
