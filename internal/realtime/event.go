package realtime

import (
	"time"

	"github.com/google/uuid"
)

// Reserved frame types emitted by the stream itself. Business frame types are
// defined by collaborators; every frame is self-describing via Type and
// Timestamp since no cross-frame ordering is guaranteed.
const (
	FrameConnected = "connected"
	FramePing      = "ping"
)

// Event is a discriminated push frame delivered over a live connection.
type Event struct {
	ID        string      `json:"id,omitempty"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"ts"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent builds a business frame with a fresh envelope ID.
func NewEvent(frameType string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      frameType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// Connected is the once-on-open frame.
func Connected() Event {
	return Event{Type: FrameConnected, Timestamp: time.Now().UTC()}
}

// Ping is the periodic liveness frame.
func Ping() Event {
	return Event{Type: FramePing, Timestamp: time.Now().UTC()}
}
