package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to an entity
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
	EventTypeToggled EventType = "toggled"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeNote    EntityType = "note"
	EntityTypeComment EntityType = "comment"
	EntityTypeLike    EntityType = "like"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "note.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "note"
	Payload   interface{} `json:"payload"`   // Entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// NoteCreated creates a note.created event
func NoteCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeNote, payload)
}

// NoteUpdated creates a note.updated event
func NoteUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeNote, payload)
}

// NoteDeleted creates a note.deleted event
func NoteDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeNote, payload)
}

// CommentCreated creates a comment.created event
func CommentCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeComment, payload)
}

// CommentDeleted creates a comment.deleted event
func CommentDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeComment, payload)
}

// LikeToggled creates a like.toggled event
func LikeToggled(payload interface{}) Event {
	return NewEvent(EventTypeToggled, EntityTypeLike, payload)
}
