package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldsafe-service/internal/domain"
)

// Credential transport: one cookie name and one authorization scheme per
// principal kind. The distinct schemes let a single request carry both
// credentials without collision.
const (
	StaffCookieName = "staff_token"
	FieldCookieName = "field_token"

	StaffScheme = "Staff"
	FieldScheme = "Field"
)

// KindAny requests kind-agnostic extraction. Staff wins ties because staff
// credentials imply elevated trust.
const KindAny domain.PrincipalKind = "ANY"

// RawToken is an unverified credential pulled off a request.
type RawToken struct {
	Token string
	Kind  domain.PrincipalKind
}

// Extract pulls a candidate token for the wanted kind out of the request's
// cookies or authorization header. Absence is a normal outcome, not an error.
func Extract(c *fiber.Ctx, wantedKind domain.PrincipalKind) (RawToken, bool) {
	switch wantedKind {
	case domain.KindStaff, domain.KindFieldworker:
		return extractKind(c, wantedKind)
	case KindAny:
		if raw, ok := extractKind(c, domain.KindStaff); ok {
			return raw, true
		}
		return extractKind(c, domain.KindFieldworker)
	default:
		return RawToken{}, false
	}
}

func extractKind(c *fiber.Ctx, kind domain.PrincipalKind) (RawToken, bool) {
	cookieName, scheme := StaffCookieName, StaffScheme
	if kind == domain.KindFieldworker {
		cookieName, scheme = FieldCookieName, FieldScheme
	}

	if cookie := c.Cookies(cookieName); cookie != "" {
		return RawToken{Token: cookie, Kind: kind}, true
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return RawToken{}, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], scheme) {
		return RawToken{}, false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return RawToken{}, false
	}
	return RawToken{Token: token, Kind: kind}, true
}
