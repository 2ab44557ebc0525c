package dto

// NotifyRequest asks the service to push an event to one connected client
// (TargetID set) or to all of them (TargetID empty).
type NotifyRequest struct {
	TargetID  string      `json:"target_id"`
	FrameType string      `json:"frame_type"`
	Payload   interface{} `json:"payload"`
}
