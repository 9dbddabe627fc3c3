package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNoteNotFound = errors.New("note not found")
)

// Bounds shared by notes and comments
const (
	MaxNoteContentLength = 500
	MaxTilt              = 4
)

// NoteStyle is the visual treatment of a note. It carries no behavior.
type NoteStyle string

const (
	NoteStyleClassic  NoteStyle = "classic"
	NoteStyleSpiral   NoteStyle = "spiral"
	NoteStyleTorn     NoteStyle = "torn"
	NoteStyleSticky   NoteStyle = "sticky"
	NoteStylePolaroid NoteStyle = "polaroid"
	NoteStyleCurved   NoteStyle = "curved"
	NoteStyleFolded   NoteStyle = "folded"
)

// Known reports whether the style is one the web client ships with
func (s NoteStyle) Known() bool {
	switch s {
	case NoteStyleClassic, NoteStyleSpiral, NoteStyleTorn, NoteStyleSticky,
		NoteStylePolaroid, NoteStyleCurved, NoteStyleFolded:
		return true
	}
	return false
}

// NoteSort selects the ordering of the board listing
type NoteSort string

const (
	NoteSortRecent   NoteSort = "recent"
	NoteSortPopular  NoteSort = "popular"
	NoteSortTrending NoteSort = "trending"
)

// Note is a sticky note posted to the wall
type Note struct {
	ID              string          `json:"id"`
	AuthorID        string          `json:"authorId,omitempty"`
	AuthorAnonymous bool            `json:"-"`
	Content         string          `json:"content"`
	BackgroundColor string          `json:"backgroundColor"`
	NoteStyle       NoteStyle       `json:"noteStyle"`
	ClipType        string          `json:"clipType"`
	Tilt            decimal.Decimal `json:"tilt"`
	SelectedFont    string          `json:"selectedFont"`
	LikeCount       int64           `json:"likeCount"`
	CommentCount    int64           `json:"commentCount"`
	ViewCount       int64           `json:"viewCount"`
	LikedByMe       bool            `json:"likedByMe"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// UpdateNoteData holds the fields of a partial note update; nil means unchanged
type UpdateNoteData struct {
	Content         *string
	BackgroundColor *string
	NoteStyle       *NoteStyle
	ClipType        *string
	Tilt            *decimal.Decimal
	SelectedFont    *string
}

// IsEmpty reports whether the update changes nothing
func (d *UpdateNoteData) IsEmpty() bool {
	return d.Content == nil && d.BackgroundColor == nil && d.NoteStyle == nil &&
		d.ClipType == nil && d.Tilt == nil && d.SelectedFont == nil
}

// NoteFilters contains the listing parameters for the wall
type NoteFilters struct {
	Page     int
	Limit    int
	Sort     NoteSort
	ViewerID string
}

// Offset returns the number of rows to skip for the requested page
func (f *NoteFilters) Offset() int {
	return PageOffset(f.Page, f.Limit)
}

// PaginatedNotes is one page of the wall
type PaginatedNotes struct {
	Items []*Note
	Page  int
	Limit int
	Total int64
}

// HasMore reports whether pages follow this one
func (p *PaginatedNotes) HasMore() bool {
	return hasMore(p.Page, p.Limit, p.Total)
}

// NoteRepository defines the interface for note data access.
// Read methods fill the derived counters and LikedByMe for viewerID.
type NoteRepository interface {
	Create(ctx context.Context, note *Note) (*Note, error)
	GetByID(ctx context.Context, id string, viewerID string) (*Note, error)
	List(ctx context.Context, filters *NoteFilters) (*PaginatedNotes, error)
	Update(ctx context.Context, id string, data *UpdateNoteData) (*Note, error)
	// Delete removes the note together with its comments, views, likes and reports
	Delete(ctx context.Context, id string) error
}
