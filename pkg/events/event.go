package events

import "time"

const (
	ModerationBlocked             = "moderation.blocked"
	ModerationProviderUnavailable = "moderation.provider_unavailable"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the dotted code for this event (e.g., "moderation.blocked").
	EventType() string

	Payload() map[string]interface{}

	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
