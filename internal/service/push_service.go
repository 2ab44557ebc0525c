package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/fieldsafe-service/internal/events"
	"github.com/spec-kit/fieldsafe-service/internal/realtime"
)

// PushService forwards dispatched notification events to live connections.
// Delivery is best-effort: a failed or absent connection degrades to "event
// not delivered" and is never surfaced to the publisher as an error.
type PushService struct {
	dispatcher events.Dispatcher
	registry   *realtime.Registry
	logger     *zap.Logger
}

// NewPushService creates the service.
func NewPushService(dispatcher events.Dispatcher, registry *realtime.Registry, logger *zap.Logger) *PushService {
	return &PushService{
		dispatcher: dispatcher,
		registry:   registry,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to notification events.
func (p *PushService) RegisterHandlers() {
	if p.dispatcher == nil {
		return
	}
	p.dispatcher.Subscribe(events.EventNotifyUser, p.handleNotifyUser)
	p.dispatcher.Subscribe(events.EventNotifyAll, p.handleNotifyAll)
}

func (p *PushService) handleNotifyUser(_ context.Context, event events.Event) error {
	frame := realtime.NewEvent(event.FrameType, event.Payload)
	if !p.registry.SendTo(event.TargetID, frame) {
		p.logger.Debug("push not delivered",
			zap.String("target_id", event.TargetID),
			zap.String("frame_type", event.FrameType))
	}
	return nil
}

func (p *PushService) handleNotifyAll(_ context.Context, event events.Event) error {
	frame := realtime.NewEvent(event.FrameType, event.Payload)
	delivered := p.registry.Broadcast(frame)
	p.logger.Debug("push broadcast",
		zap.String("frame_type", event.FrameType),
		zap.Int("delivered", delivered))
	return nil
}
