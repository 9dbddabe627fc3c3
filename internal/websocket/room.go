package websocket

import "strings"

// RoomWall receives every board event
const RoomWall = "wall"

const noteRoomPrefix = "note:"

// NoteRoom returns the room of a single note's detail page
func NoteRoom(noteID string) string {
	return noteRoomPrefix + noteID
}

// ParseRoom normalizes a client supplied room name. Empty means the wall.
// It reports false for anything other than "wall" or "note:{id}".
func ParseRoom(room string) (string, bool) {
	switch {
	case room == "" || room == RoomWall:
		return RoomWall, true
	case strings.HasPrefix(room, noteRoomPrefix) && len(room) > len(noteRoomPrefix):
		return room, true
	}
	return "", false
}
