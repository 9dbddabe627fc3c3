package dto

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// CreateCommentRequest is the accepted body of POST /notes/:id/comments
type CreateCommentRequest struct {
	Content         *string          `json:"content" validate:"required,commentcontent"`
	BackgroundColor *string          `json:"backgroundColor" validate:"required,notecolor"`
	NoteStyle       *string          `json:"noteStyle" validate:"required,min=1"`
	SelectedFont    *string          `json:"selectedFont" validate:"required,min=1"`
	Tilt            *decimal.Decimal `json:"tilt" validate:"required,tilt"`
}

// CreateComment is a validated CreateCommentRequest
type CreateComment struct {
	Content         string
	BackgroundColor string
	NoteStyle       string
	SelectedFont    string
	Tilt            decimal.Decimal
}

// ListCommentsQuery is a validated GET /notes/:id/comments query
type ListCommentsQuery struct {
	Page  int `json:"page" validate:"pagenumber"`
	Limit int `json:"limit" validate:"pagesize"`
}

// DecodeCreateComment decodes and validates a create-comment body
func DecodeCreateComment(raw []byte) (CreateComment, error) {
	var req CreateCommentRequest
	errs := &ValidationErrors{}

	decodeObject(raw, &req, errs)
	if errs.Has("body") {
		return CreateComment{}, errs
	}
	validateStruct(&req, errs)
	if err := errs.orNil(); err != nil {
		return CreateComment{}, err
	}

	return CreateComment{
		Content:         *req.Content,
		BackgroundColor: *req.BackgroundColor,
		NoteStyle:       *req.NoteStyle,
		SelectedFont:    *req.SelectedFont,
		Tilt:            *req.Tilt,
	}, nil
}

// ParseListComments validates a comment listing query, applying defaults
func ParseListComments(q url.Values) (ListCommentsQuery, error) {
	errs := &ValidationErrors{}
	page := parsePage(q, errs)

	query := ListCommentsQuery{Page: page.Page, Limit: page.Limit}
	validateStruct(&query, errs)
	if err := errs.orNil(); err != nil {
		return ListCommentsQuery{}, err
	}
	return query, nil
}
