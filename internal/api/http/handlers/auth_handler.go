package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldsafe-service/internal/api/dto"
	"github.com/spec-kit/fieldsafe-service/internal/auth"
	"github.com/spec-kit/fieldsafe-service/internal/domain"
	"github.com/spec-kit/fieldsafe-service/internal/service"
	apperrors "github.com/spec-kit/fieldsafe-service/pkg/util"
)

// AuthHandler exposes login, logout, and session revalidation endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	session *service.SessionService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{auth: authService, session: sessionService}
}

// StaffLogin handles POST /auth/staff/login.
func (h *AuthHandler) StaffLogin(c *fiber.Ctx) error {
	return h.login(c, auth.StaffCookieName, h.auth.LoginStaff)
}

// FieldLogin handles POST /auth/field/login.
func (h *AuthHandler) FieldLogin(c *fiber.Ctx) error {
	return h.login(c, auth.FieldCookieName, h.auth.LoginFieldworker)
}

type loginFunc func(ctx context.Context, email, password string, remember bool) (*domain.Principal, string, time.Time, error)

// login factors the shared flow; the two endpoints differ only in the login
// call and the cookie they set.
func (h *AuthHandler) login(c *fiber.Ctx, cookieName string, doLogin loginFunc) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	principal, token, exp, err := doLogin(c.Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Expires:  exp,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"principal": dto.NewPrincipalResponse(principal),
			"auth":      dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout by expiring both kind cookies. Tokens are
// stateless, so discarding the credential is the entire operation.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	for _, name := range []string{auth.StaffCookieName, auth.FieldCookieName} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Session handles GET /auth/session: it re-verifies the ambient credential
// and returns the principal with volatile claims refreshed. Idempotent and
// safe to call on every page load.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	principal, err := h.revalidateAmbient(c)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredential) || errors.Is(err, auth.ErrUnauthenticated) {
			return apperrors.NewUnauthorized("authentication required")
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"principal": dto.NewPrincipalResponse(principal)},
	})
}

// revalidateAmbient applies the same precedence and fallthrough rules as
// kind-agnostic authentication: Staff credential first, and a malformed
// Staff credential falls through to the Fieldworker credential instead of
// rejecting the request outright.
func (h *AuthHandler) revalidateAmbient(c *fiber.Ctx) (*domain.Principal, error) {
	var lastErr error

	for _, kind := range []domain.PrincipalKind{domain.KindStaff, domain.KindFieldworker} {
		raw, ok := auth.Extract(c, kind)
		if !ok {
			continue
		}
		principal, err := h.session.Revalidate(c.Context(), raw.Token)
		if err == nil && principal.Kind == kind {
			return principal, nil
		}
		if err == nil {
			err = auth.ErrInvalidCredential
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, auth.ErrUnauthenticated
}
