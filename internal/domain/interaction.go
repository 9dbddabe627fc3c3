package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrTargetNotFound      = errors.New("target not found")
	ErrViewAlreadyRecorded = errors.New("view already recorded")
)

const MaxReportReasonLength = 200

// TargetType is the kind of entity a like or report points at
type TargetType string

const (
	TargetTypeNote    TargetType = "note"
	TargetTypeComment TargetType = "comment"
)

// IsValid reports whether t is a supported target type
func (t TargetType) IsValid() bool {
	return t == TargetTypeNote || t == TargetTypeComment
}

// LikeResult is the state of a target after a like toggle
type LikeResult struct {
	TargetID   string     `json:"targetId"`
	TargetType TargetType `json:"targetType"`
	Liked      bool       `json:"liked"`
	LikeCount  int64      `json:"likeCount"`
}

// LikeRepository defines the interface for like data access
type LikeRepository interface {
	// Toggle removes the actor's like on the target if present, otherwise adds it
	Toggle(ctx context.Context, userID, targetID string, targetType TargetType) (*LikeResult, error)
}

// View records that a user opened a note. (UserID, NoteID) is unique.
type View struct {
	UserID    string    `json:"userId"`
	NoteID    string    `json:"noteId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ViewRepository defines the interface for view data access
type ViewRepository interface {
	// Record inserts the view. It returns ErrViewAlreadyRecorded when the
	// pair exists and ErrNoteNotFound when the note does not.
	Record(ctx context.Context, userID, noteID string) (*View, error)
	CountByNote(ctx context.Context, noteID string) (int64, error)
}

// Report flags a note or comment for moderation
type Report struct {
	ID         string     `json:"id"`
	ReporterID string     `json:"reporterId"`
	TargetID   string     `json:"targetId"`
	TargetType TargetType `json:"targetType"`
	Reason     *string    `json:"reason,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	Create(ctx context.Context, report *Report) (*Report, error)
}
