package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/fieldsafe-service/internal/api/dto"
	"github.com/spec-kit/fieldsafe-service/internal/auth"
	"github.com/spec-kit/fieldsafe-service/internal/events"
	apperrors "github.com/spec-kit/fieldsafe-service/pkg/util"
)

// NotifyHandler lets business callers push an event to one connected client
// or to all of them. Delivery is best-effort; the response only acknowledges
// that the event was published.
type NotifyHandler struct {
	dispatcher events.Dispatcher
}

// NewNotifyHandler constructs handler.
func NewNotifyHandler(dispatcher events.Dispatcher) *NotifyHandler {
	return &NotifyHandler{dispatcher: dispatcher}
}

// Notify handles POST /api/notify.
func (h *NotifyHandler) Notify(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.NotifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.FrameType == "" {
		return fiber.NewError(http.StatusBadRequest, "frame_type required")
	}

	eventType := events.EventNotifyAll
	if req.TargetID != "" {
		eventType = events.EventNotifyUser
	}

	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TargetID:  req.TargetID,
		FrameType: req.FrameType,
		Actor: events.Actor{
			Kind:        principal.Kind,
			PrincipalID: principal.ID,
			TenantID:    principal.TenantID,
		},
		Timestamp: time.Now().UTC(),
		Payload:   req.Payload,
	}
	if err := h.dispatcher.Publish(c.Context(), event); err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"data": fiber.Map{"event_id": event.ID},
	})
}
