package handlers

import (
	"bufio"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/spec-kit/fieldsafe-service/internal/auth"
	"github.com/spec-kit/fieldsafe-service/internal/realtime"
	apperrors "github.com/spec-kit/fieldsafe-service/pkg/util"
)

// EventsHandler serves the long-lived push stream. Each open stream runs in
// its own task; the response is newline-delimited JSON frames with
// intermediary buffering disabled.
type EventsHandler struct {
	registry  *realtime.Registry
	heartbeat time.Duration
	buffer    int
	logger    *zap.Logger
}

// NewEventsHandler constructs handler.
func NewEventsHandler(registry *realtime.Registry, heartbeat time.Duration, buffer int, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		registry:  registry,
		heartbeat: heartbeat,
		buffer:    buffer,
		logger:    logger,
	}
}

// Stream handles GET /api/events. The connection replaces any previous one
// for the same identity; teardown always runs through the single deferred
// unregister below, whether the client closed, a heartbeat write failed, or
// the registry evicted the connection after a failed delivery.
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	c.Set(fiber.HeaderContentType, "application/x-ndjson")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	conn := realtime.NewConnection(principal.ID, h.buffer)
	h.registry.Register(conn)

	logger := h.logger.With(zap.String("principal_id", principal.ID))

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		h.runStream(w, conn, logger)
	}))
	return nil
}

// runStream is the stream task body: a once-on-open connected frame, then
// business frames and heartbeats until the connection ends. All exits pass
// through the single deferred unregister.
func (h *EventsHandler) runStream(w *bufio.Writer, conn *realtime.Connection, logger *zap.Logger) {
	defer h.registry.Unregister(conn.PrincipalID(), conn)
	defer conn.Close()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	if err := writeFrame(w, realtime.Connected()); err != nil {
		return
	}
	logger.Debug("event stream opened")

	for {
		select {
		case <-conn.Done():
			logger.Debug("event stream closed")
			return
		case ev := <-conn.Frames():
			if err := writeFrame(w, ev); err != nil {
				logger.Debug("event write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := writeFrame(w, realtime.Ping()); err != nil {
				logger.Debug("heartbeat write failed", zap.Error(err))
				return
			}
		}
	}
}

func writeFrame(w *bufio.Writer, ev realtime.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}
