package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCommentsDisabled = errors.New("comments are disabled on this note")
)

const MaxCommentContentLength = 300

// Comment is a reply note attached to exactly one note
type Comment struct {
	ID              string          `json:"id"`
	NoteID          string          `json:"noteId"`
	AuthorID        string          `json:"authorId,omitempty"`
	AuthorAnonymous bool            `json:"-"`
	Content         string          `json:"content"`
	BackgroundColor string          `json:"backgroundColor"`
	NoteStyle       NoteStyle       `json:"noteStyle"`
	SelectedFont    string          `json:"selectedFont"`
	Tilt            decimal.Decimal `json:"tilt"`
	LikeCount       int64           `json:"likeCount"`
	LikedByMe       bool            `json:"likedByMe"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// PaginatedComments is one page of a note's comments, oldest first
type PaginatedComments struct {
	Items []*Comment
	Page  int
	Limit int
	Total int64
}

// HasMore reports whether pages follow this one
func (p *PaginatedComments) HasMore() bool {
	return hasMore(p.Page, p.Limit, p.Total)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) (*Comment, error)
	GetByID(ctx context.Context, id string, viewerID string) (*Comment, error)
	ListByNote(ctx context.Context, noteID string, viewerID string, page, limit int) (*PaginatedComments, error)
	// Delete removes the comment together with its likes and reports
	Delete(ctx context.Context, id string) error
}
