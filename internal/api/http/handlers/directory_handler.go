package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldsafe-service/internal/api/dto"
	"github.com/spec-kit/fieldsafe-service/internal/auth"
	"github.com/spec-kit/fieldsafe-service/internal/service"
	apperrors "github.com/spec-kit/fieldsafe-service/pkg/util"
)

// DirectoryHandler exposes staff administration endpoints.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// ListStaff handles GET /api/staff.
func (h *DirectoryHandler) ListStaff(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	members, err := h.directory.ListStaff(c.Context(), principal)
	if err != nil {
		return apperrors.MapError(err)
	}

	out := make([]dto.StaffMemberResponse, 0, len(members))
	for _, member := range members {
		out = append(out, dto.NewStaffMemberResponse(member))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"staff": out}})
}

// CreateStaff handles POST /api/staff.
func (h *DirectoryHandler) CreateStaff(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	created, err := h.directory.CreateStaff(c.Context(), principal, service.CreateStaffInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Locale:   req.Locale,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"staff": dto.NewStaffMemberResponse(created)}})
}

// UpdateRole handles PATCH /api/staff/:id/role.
func (h *DirectoryHandler) UpdateRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.StaffUpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.directory.UpdateStaffRole(c.Context(), principal, c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"staff": dto.NewStaffMemberResponse(updated)}})
}

// SetActive handles PATCH /api/staff/:id/active.
func (h *DirectoryHandler) SetActive(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.StaffSetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.directory.SetStaffActive(c.Context(), principal, c.Params("id"), req.Active)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"staff": dto.NewStaffMemberResponse(updated)}})
}
