package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_Implements_EventPublisher(t *testing.T) {
	var _ EventPublisher = (*Hub)(nil)
}

func TestHub_Publish_MultipleRooms(t *testing.T) {
	hub := NewHub()

	wall := newMockClient("client-1", RoomWall)
	detail := newMockClient("client-2", NoteRoom("n1"))
	hub.Register(wall)
	hub.Register(detail)

	var publisher EventPublisher = hub
	publisher.Publish(CommentCreated(map[string]interface{}{"id": "c1"}), RoomWall, NoteRoom("n1"))

	assert.Len(t, wall.GetMessages(), 1)
	assert.Len(t, detail.GetMessages(), 1)
}

func TestNoOpPublisher_Publish(t *testing.T) {
	publisher := &NoOpPublisher{}

	assert.NotPanics(t, func() {
		publisher.Publish(NoteCreated(map[string]interface{}{"id": "n1"}), RoomWall)
	})
}
