package auth

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/spec-kit/fieldsafe-service/internal/domain"
)

func TestAuthenticateSpecificKind(t *testing.T) {
	codec := NewCodec("test-secret")
	authn := NewAuthenticator(codec)
	app := fiber.New()

	staffToken, _, err := codec.Issue(staffPrincipal(), time.Minute)
	require.NoError(t, err)

	c := testCtx(t, app, func(ctx *fasthttp.RequestCtx) {
		ctx.Request.Header.SetCookie(StaffCookieName, staffToken)
	})

	principal, err := authn.Authenticate(c, domain.KindStaff)
	require.NoError(t, err)
	assert.Equal(t, domain.KindStaff, principal.Kind)
	assert.Equal(t, "staff-1", principal.ID)
	assert.Equal(t, "T1", principal.TenantID)
}

func TestAuthenticateNoCredential(t *testing.T) {
	authn := NewAuthenticator(NewCodec("test-secret"))
	app := fiber.New()

	c := testCtx(t, app, nil)

	_, err := authn.Authenticate(c, KindAny)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateMalformedCredential(t *testing.T) {
	authn := NewAuthenticator(NewCodec("test-secret"))
	app := fiber.New()

	c := testCtx(t, app, func(ctx *fasthttp.RequestCtx) {
		ctx.Request.Header.SetCookie(StaffCookieName, "garbage")
	})

	_, err := authn.Authenticate(c, domain.KindStaff)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

// A malformed staff cookie must not block a valid fieldworker credential on
// the same request.
func TestAuthenticateAnyFallthrough(t *testing.T) {
	codec := NewCodec("test-secret")
	authn := NewAuthenticator(codec)
	app := fiber.New()

	fieldToken, _, err := codec.Issue(fieldPrincipal(), time.Minute)
	require.NoError(t, err)

	c := testCtx(t, app, func(ctx *fasthttp.RequestCtx) {
		ctx.Request.Header.SetCookie(StaffCookieName, "garbage")
		ctx.Request.Header.Set(fiber.HeaderAuthorization, "Field "+fieldToken)
	})

	principal, err := authn.Authenticate(c, KindAny)
	require.NoError(t, err)
	assert.Equal(t, domain.KindFieldworker, principal.Kind)
	assert.Equal(t, "worker-1", principal.ID)
}

func TestAuthenticateAnyPrefersStaff(t *testing.T) {
	codec := NewCodec("test-secret")
	authn := NewAuthenticator(codec)
	app := fiber.New()

	staffToken, _, err := codec.Issue(staffPrincipal(), time.Minute)
	require.NoError(t, err)
	fieldToken, _, err := codec.Issue(fieldPrincipal(), time.Minute)
	require.NoError(t, err)

	c := testCtx(t, app, func(ctx *fasthttp.RequestCtx) {
		ctx.Request.Header.SetCookie(StaffCookieName, staffToken)
		ctx.Request.Header.Set(fiber.HeaderAuthorization, "Field "+fieldToken)
	})

	principal, err := authn.Authenticate(c, KindAny)
	require.NoError(t, err)
	assert.Equal(t, domain.KindStaff, principal.Kind)
}

// A fieldworker token must never satisfy a staff check even though its
// signature is valid.
func TestAuthenticateKindNotSubstitutable(t *testing.T) {
	codec := NewCodec("test-secret")
	authn := NewAuthenticator(codec)
	app := fiber.New()

	fieldToken, _, err := codec.Issue(fieldPrincipal(), time.Minute)
	require.NoError(t, err)

	// Fieldworker token smuggled in through the staff cookie.
	c := testCtx(t, app, func(ctx *fasthttp.RequestCtx) {
		ctx.Request.Header.SetCookie(StaffCookieName, fieldToken)
	})

	_, err = authn.Authenticate(c, domain.KindStaff)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestAuthenticateAnyOnlyInvalidCredential(t *testing.T) {
	authn := NewAuthenticator(NewCodec("test-secret"))
	app := fiber.New()

	c := testCtx(t, app, func(ctx *fasthttp.RequestCtx) {
		ctx.Request.Header.SetCookie(StaffCookieName, "garbage")
	})

	_, err := authn.Authenticate(c, KindAny)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
