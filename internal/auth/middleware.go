package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldsafe-service/internal/domain"
	apperrors "github.com/spec-kit/fieldsafe-service/pkg/util"
)

const principalKey = "auth_principal"

// Middleware binds the authentication pipeline into Fiber routes.
type Middleware struct {
	authn *Authenticator
}

// NewMiddleware constructs middleware around an authenticator.
func NewMiddleware(authn *Authenticator) *Middleware {
	return &Middleware{authn: authn}
}

// Require authenticates the request for the wanted kind (or KindAny) and
// stores the principal in request locals. Missing and invalid credentials
// produce the same uniform rejection.
func (m *Middleware) Require(wantedKind domain.PrincipalKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := m.authn.Authenticate(c, wantedKind)
		if err != nil {
			return mapAuthError(err)
		}
		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// RequireStaff authorizes an already-authenticated staff principal with the
// given roles.
func RequireStaff(roles ...domain.Role) fiber.Handler {
	return requireKind(domain.KindStaff, roles...)
}

// RequireFieldworker authorizes an already-authenticated fieldworker
// principal with the given roles.
func RequireFieldworker(roles ...domain.Role) fiber.Handler {
	return requireKind(domain.KindFieldworker, roles...)
}

func requireKind(kind domain.PrincipalKind, roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if err := Authorize(principal, kind, roles...); err != nil {
			return mapAuthError(err)
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, ErrForbidden):
		return apperrors.NewForbidden("not authorized")
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidCredential):
		return apperrors.NewUnauthorized("authentication required")
	default:
		return apperrors.MapError(err)
	}
}
