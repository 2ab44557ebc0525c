package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldsafe-service/internal/domain"
)

// Authenticator resolves a request to a normalized Principal by orchestrating
// the extractor and the codec. It never returns a partially populated
// Principal: decode failure and kind mismatch are both hard failures.
type Authenticator struct {
	codec *Codec
}

// NewAuthenticator builds an authenticator over the codec.
func NewAuthenticator(codec *Codec) *Authenticator {
	return &Authenticator{codec: codec}
}

// Authenticate resolves the request's credential for the wanted kind.
// In KindAny mode a malformed Staff credential falls through to the
// Fieldworker credential rather than failing immediately, so a stale staff
// cookie cannot block a valid fieldworker header on the same request.
func (a *Authenticator) Authenticate(c *fiber.Ctx, wantedKind domain.PrincipalKind) (*domain.Principal, error) {
	if wantedKind == KindAny {
		return a.authenticateAny(c)
	}

	raw, ok := extractKind(c, wantedKind)
	if !ok {
		return nil, ErrUnauthenticated
	}
	principal, err := a.codec.Decode(raw.Token)
	if err != nil {
		return nil, err
	}
	if principal.Kind != wantedKind {
		return nil, fmt.Errorf("%w: token asserts wrong kind", ErrInvalidCredential)
	}
	return principal, nil
}

func (a *Authenticator) authenticateAny(c *fiber.Ctx) (*domain.Principal, error) {
	var decodeErr error

	if raw, ok := extractKind(c, domain.KindStaff); ok {
		principal, err := a.codec.Decode(raw.Token)
		if err == nil && principal.Kind == domain.KindStaff {
			return principal, nil
		}
		if err == nil {
			err = fmt.Errorf("%w: token asserts wrong kind", ErrInvalidCredential)
		}
		decodeErr = err
	}

	if raw, ok := extractKind(c, domain.KindFieldworker); ok {
		principal, err := a.codec.Decode(raw.Token)
		if err == nil && principal.Kind == domain.KindFieldworker {
			return principal, nil
		}
		if err == nil {
			err = fmt.Errorf("%w: token asserts wrong kind", ErrInvalidCredential)
		}
		decodeErr = err
	}

	if decodeErr != nil {
		return nil, decodeErr
	}
	return nil, ErrUnauthenticated
}
