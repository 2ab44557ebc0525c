package events

import (
	"time"

	"github.com/spec-kit/fieldsafe-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	// EventNotifyUser targets one connected principal identity.
	EventNotifyUser EventType = "notify_user"
	// EventNotifyAll fans out to every connected client.
	EventNotifyAll EventType = "notify_all"
)

// Actor encapsulates the principal that triggered an event.
type Actor struct {
	Kind        domain.PrincipalKind `json:"kind"`
	PrincipalID string               `json:"principal_id"`
	TenantID    string               `json:"tenant_id"`
}

// Event represents a notification emitted by business logic. FrameType and
// Payload pass through to the push frame unchanged; TargetID is empty for
// broadcasts.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TargetID  string      `json:"target_id,omitempty"`
	FrameType string      `json:"frame_type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}
