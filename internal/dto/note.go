package dto

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// CreateNoteRequest is the accepted body of POST /notes
type CreateNoteRequest struct {
	Content         *string          `json:"content" validate:"required,notecontent"`
	BackgroundColor *string          `json:"backgroundColor" validate:"required,notecolor"`
	NoteStyle       *string          `json:"noteStyle" validate:"required,min=1"`
	ClipType        *string          `json:"clipType" validate:"required,min=1"`
	Tilt            *decimal.Decimal `json:"tilt" validate:"required,tilt"`
	SelectedFont    *string          `json:"selectedFont" validate:"required,min=1"`
}

// CreateNote is a validated CreateNoteRequest
type CreateNote struct {
	Content         string
	BackgroundColor string
	NoteStyle       string
	ClipType        string
	Tilt            decimal.Decimal
	SelectedFont    string
}

// UpdateNoteRequest is the accepted body of PATCH /notes/:id. Every field is optional.
type UpdateNoteRequest struct {
	Content         *string          `json:"content" validate:"omitempty,notecontent"`
	BackgroundColor *string          `json:"backgroundColor" validate:"omitempty,notecolor"`
	NoteStyle       *string          `json:"noteStyle" validate:"omitempty,min=1"`
	ClipType        *string          `json:"clipType" validate:"omitempty,min=1"`
	Tilt            *decimal.Decimal `json:"tilt" validate:"omitempty,tilt"`
	SelectedFont    *string          `json:"selectedFont" validate:"omitempty,min=1"`
}

// ListNotesQuery is a validated GET /notes query
type ListNotesQuery struct {
	Page  int    `json:"page" validate:"pagenumber"`
	Limit int    `json:"limit" validate:"pagesize"`
	Sort  string `json:"sort" validate:"oneof=recent popular trending"`
}

// DecodeCreateNote decodes and validates a create-note body
func DecodeCreateNote(raw []byte) (CreateNote, error) {
	var req CreateNoteRequest
	errs := &ValidationErrors{}

	decodeObject(raw, &req, errs)
	if errs.Has("body") {
		return CreateNote{}, errs
	}
	validateStruct(&req, errs)
	if err := errs.orNil(); err != nil {
		return CreateNote{}, err
	}

	return CreateNote{
		Content:         *req.Content,
		BackgroundColor: *req.BackgroundColor,
		NoteStyle:       *req.NoteStyle,
		ClipType:        *req.ClipType,
		Tilt:            *req.Tilt,
		SelectedFont:    *req.SelectedFont,
	}, nil
}

// DecodeUpdateNote decodes and validates a partial note update
func DecodeUpdateNote(raw []byte) (UpdateNoteRequest, error) {
	var req UpdateNoteRequest
	errs := &ValidationErrors{}

	decodeObject(raw, &req, errs)
	if errs.Has("body") {
		return UpdateNoteRequest{}, errs
	}
	validateStruct(&req, errs)
	if err := errs.orNil(); err != nil {
		return UpdateNoteRequest{}, err
	}
	return req, nil
}

// ParseListNotes validates the wall listing query, applying defaults
func ParseListNotes(q url.Values) (ListNotesQuery, error) {
	errs := &ValidationErrors{}
	page := parsePage(q, errs)

	query := ListNotesQuery{
		Page:  page.Page,
		Limit: page.Limit,
		Sort:  strings.TrimSpace(q.Get("sort")),
	}
	if query.Sort == "" {
		query.Sort = "recent"
	}

	validateStruct(&query, errs)
	if err := errs.orNil(); err != nil {
		return ListNotesQuery{}, err
	}
	return query, nil
}
