package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/notewall/notewall-backend/internal/domain"
	"github.com/notewall/notewall-backend/internal/dto"
	"github.com/notewall/notewall-backend/internal/middleware"
	"github.com/notewall/notewall-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// NoteHandler handles note-related HTTP requests
type NoteHandler struct {
	noteService *service.NoteService
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// NoteResponse represents a note in API responses
type NoteResponse struct {
	ID              string  `json:"id"`
	AuthorID        string  `json:"authorId,omitempty"`
	Content         string  `json:"content"`
	BackgroundColor string  `json:"backgroundColor"`
	NoteStyle       string  `json:"noteStyle"`
	ClipType        string  `json:"clipType"`
	Tilt            float64 `json:"tilt"`
	SelectedFont    string  `json:"selectedFont"`
	LikeCount       int64   `json:"likeCount"`
	CommentCount    int64   `json:"commentCount"`
	ViewCount       int64   `json:"viewCount"`
	LikedByMe       bool    `json:"likedByMe"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// NoteListResponse is one page of the wall
type NoteListResponse struct {
	Items   []NoteResponse `json:"items"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	Total   int64          `json:"total"`
	HasMore bool           `json:"hasMore"`
}

// ListNotes godoc
// @Summary List notes on the wall
// @Description Get one page of notes. A bearer token is optional and fills likedByMe.
// @Tags notes
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 50)" default(20)
// @Param sort query string false "Sort order" Enums(recent, popular, trending) default(recent)
// @Success 200 {object} NoteListResponse
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /notes [get]
func (h *NoteHandler) ListNotes(c echo.Context) error {
	query, err := dto.ParseListNotes(c.QueryParams())
	if err != nil {
		return NewDecodeError(c, err)
	}

	page, err := h.noteService.ListNotes(c.Request().Context(), middleware.GetAuth0ID(c), query)
	if err != nil {
		log.Error().Err(err).Str("sort", query.Sort).Msg("Failed to list notes")
		return NewInternalError(c, "Failed to list notes")
	}

	items := make([]NoteResponse, len(page.Items))
	for i, note := range page.Items {
		items[i] = toNoteResponse(note)
	}

	return c.JSON(http.StatusOK, NoteListResponse{
		Items:   items,
		Page:    page.Page,
		Limit:   page.Limit,
		Total:   page.Total,
		HasMore: page.HasMore(),
	})
}

// CreateNote godoc
// @Summary Create a note
// @Description Pin a new note to the wall
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNoteRequest true "Note to create"
// @Success 201 {object} NoteResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /notes [post]
func (h *NoteHandler) CreateNote(c echo.Context) error {
	userID := middleware.GetAuth0ID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	body, err := readBody(c)
	if err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, err := dto.DecodeCreateNote(body)
	if err != nil {
		return NewDecodeError(c, err)
	}

	note, err := h.noteService.CreateNote(c.Request().Context(), userID, input)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create note")
		return NewInternalError(c, "Failed to create note")
	}

	log.Info().Str("user_id", userID).Str("note_id", note.ID).Msg("Note created")

	return c.JSON(http.StatusCreated, toNoteResponse(note))
}

// GetNote godoc
// @Summary Get a note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID (UUID)"
// @Success 200 {object} NoteResponse
// @Failure 404 {object} ProblemDetails
// @Router /notes/{id} [get]
func (h *NoteHandler) GetNote(c echo.Context) error {
	id := c.Param("id")

	note, err := h.noteService.GetNote(c.Request().Context(), middleware.GetAuth0ID(c), id)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return NewNotFoundError(c, "Note not found")
		}
		log.Error().Err(err).Str("note_id", id).Msg("Failed to get note")
		return NewInternalError(c, "Failed to get note")
	}

	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// UpdateNote godoc
// @Summary Update a note
// @Description Edit any subset of a note's fields (author only)
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID (UUID)"
// @Param request body dto.UpdateNoteRequest true "Fields to change"
// @Success 200 {object} NoteResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /notes/{id} [patch]
func (h *NoteHandler) UpdateNote(c echo.Context) error {
	userID := middleware.GetAuth0ID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}
	id := c.Param("id")

	body, err := readBody(c)
	if err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, err := dto.DecodeUpdateNote(body)
	if err != nil {
		return NewDecodeError(c, err)
	}

	note, err := h.noteService.UpdateNote(c.Request().Context(), userID, id, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoteNotFound):
			return NewNotFoundError(c, "Note not found")
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Only the author can edit this note")
		}
		log.Error().Err(err).Str("user_id", userID).Str("note_id", id).Msg("Failed to update note")
		return NewInternalError(c, "Failed to update note")
	}

	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// DeleteNote godoc
// @Summary Delete a note
// @Description Delete a note with its comments, likes, views and reports (author only)
// @Tags notes
// @Security BearerAuth
// @Param id path string true "Note ID (UUID)"
// @Success 204 "No Content"
// @Failure 401 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	userID := middleware.GetAuth0ID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}
	id := c.Param("id")

	if err := h.noteService.DeleteNote(c.Request().Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoteNotFound):
			return NewNotFoundError(c, "Note not found")
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "Only the author can delete this note")
		}
		log.Error().Err(err).Str("user_id", userID).Str("note_id", id).Msg("Failed to delete note")
		return NewInternalError(c, "Failed to delete note")
	}

	log.Info().Str("user_id", userID).Str("note_id", id).Msg("Note deleted")

	return c.NoContent(http.StatusNoContent)
}

func toNoteResponse(note *domain.Note) NoteResponse {
	return NoteResponse{
		ID:              note.ID,
		AuthorID:        note.AuthorID,
		Content:         note.Content,
		BackgroundColor: note.BackgroundColor,
		NoteStyle:       string(note.NoteStyle),
		ClipType:        note.ClipType,
		Tilt:            note.Tilt.InexactFloat64(),
		SelectedFont:    note.SelectedFont,
		LikeCount:       note.LikeCount,
		CommentCount:    note.CommentCount,
		ViewCount:       note.ViewCount,
		LikedByMe:       note.LikedByMe,
		CreatedAt:       note.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       note.UpdatedAt.Format(time.RFC3339),
	}
}
