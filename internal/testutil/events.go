package testutil

import (
	"sync"

	"github.com/notewall/notewall-backend/internal/websocket"
)

// PublishedEvent is one captured Publish call
type PublishedEvent struct {
	Event websocket.Event
	Rooms []string
}

// MockEventPublisher captures published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(event websocket.Event, rooms ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, PublishedEvent{Event: event, Rooms: rooms})
}

// Events returns a copy of the captured events
func (m *MockEventPublisher) Events() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishedEvent(nil), m.events...)
}

// Types returns the captured event types in order
func (m *MockEventPublisher) Types() []string {
	var types []string
	for _, e := range m.Events() {
		types = append(types, e.Event.Type)
	}
	return types
}
