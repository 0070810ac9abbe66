package notifications

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeTransition EventType = "transition"
	EventTypeDigest     EventType = "digest"
)

// Event describes one successful audit mutation, or a periodic digest of the
// pending queues.
type Event struct {
	ID         uuid.UUID      `json:"id"`
	Type       EventType      `json:"type"`
	Kind       string         `json:"kind,omitempty"`
	Action     string         `json:"action,omitempty"`
	EntityID   int64          `json:"entity_id,omitempty"`
	Status     string         `json:"status,omitempty"`
	ActorID    *int64         `json:"actor_id,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewTransitionEvent builds the event emitted after an audit trigger is applied.
func NewTransitionEvent(kind, action string, entityID int64, status string, actorID *int64, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       EventTypeTransition,
		Kind:       kind,
		Action:     action,
		EntityID:   entityID,
		Status:     status,
		ActorID:    actorID,
		OccurredAt: at,
	}
}

// NewDigestEvent builds the periodic pending-queue summary event.
func NewDigestEvent(data map[string]any, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       EventTypeDigest,
		Data:       data,
		OccurredAt: at,
	}
}
