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

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	commentService *service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID              string  `json:"id"`
	NoteID          string  `json:"noteId"`
	AuthorID        string  `json:"authorId,omitempty"`
	Content         string  `json:"content"`
	BackgroundColor string  `json:"backgroundColor"`
	NoteStyle       string  `json:"noteStyle"`
	SelectedFont    string  `json:"selectedFont"`
	Tilt            float64 `json:"tilt"`
	LikeCount       int64   `json:"likeCount"`
	LikedByMe       bool    `json:"likedByMe"`
	CreatedAt       string  `json:"createdAt"`
}

// CommentListResponse is one page of comments
type CommentListResponse struct {
	Items   []CommentResponse `json:"items"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	Total   int64             `json:"total"`
	HasMore bool              `json:"hasMore"`
}

// ListComments godoc
// @Summary List a note's comments
// @Description Oldest first. A bearer token is optional and fills likedByMe.
// @Tags comments
// @Produce json
// @Param id path string true "Note ID (UUID)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 50)" default(20)
// @Success 200 {object} CommentListResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /notes/{id}/comments [get]
func (h *CommentHandler) ListComments(c echo.Context) error {
	noteID := c.Param("id")

	query, err := dto.ParseListComments(c.QueryParams())
	if err != nil {
		return NewDecodeError(c, err)
	}

	page, err := h.commentService.ListComments(c.Request().Context(), middleware.GetAuth0ID(c), noteID, query)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return NewNotFoundError(c, "Note not found")
		}
		log.Error().Err(err).Str("note_id", noteID).Msg("Failed to list comments")
		return NewInternalError(c, "Failed to list comments")
	}

	items := make([]CommentResponse, len(page.Items))
	for i, comment := range page.Items {
		items[i] = toCommentResponse(comment)
	}

	return c.JSON(http.StatusOK, CommentListResponse{
		Items:   items,
		Page:    page.Page,
		Limit:   page.Limit,
		Total:   page.Total,
		HasMore: page.HasMore(),
	})
}

// CreateComment godoc
// @Summary Comment on a note
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID (UUID)"
// @Param request body dto.CreateCommentRequest true "Comment to create"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /notes/{id}/comments [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := middleware.GetAuth0ID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}
	noteID := c.Param("id")

	body, err := readBody(c)
	if err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, err := dto.DecodeCreateComment(body)
	if err != nil {
		return NewDecodeError(c, err)
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), userID, noteID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoteNotFound):
			return NewNotFoundError(c, "Note not found")
		case errors.Is(err, domain.ErrCommentsDisabled):
			return NewForbiddenError(c, "The author has turned off comments")
		}
		log.Error().Err(err).Str("user_id", userID).Str("note_id", noteID).Msg("Failed to create comment")
		return NewInternalError(c, "Failed to create comment")
	}

	return c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Allowed for the comment author and the note author
// @Tags comments
// @Security BearerAuth
// @Param id path string true "Comment ID (UUID)"
// @Success 204 "No Content"
// @Failure 401 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID := middleware.GetAuth0ID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}
	id := c.Param("id")

	if err := h.commentService.DeleteComment(c.Request().Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrCommentNotFound), errors.Is(err, domain.ErrNoteNotFound):
			return NewNotFoundError(c, "Comment not found")
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "You cannot delete this comment")
		}
		log.Error().Err(err).Str("user_id", userID).Str("comment_id", id).Msg("Failed to delete comment")
		return NewInternalError(c, "Failed to delete comment")
	}

	return c.NoContent(http.StatusNoContent)
}

func toCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:              comment.ID,
		NoteID:          comment.NoteID,
		AuthorID:        comment.AuthorID,
		Content:         comment.Content,
		BackgroundColor: comment.BackgroundColor,
		NoteStyle:       string(comment.NoteStyle),
		SelectedFont:    comment.SelectedFont,
		Tilt:            comment.Tilt.InexactFloat64(),
		LikeCount:       comment.LikeCount,
		LikedByMe:       comment.LikedByMe,
		CreatedAt:       comment.CreatedAt.Format(time.RFC3339),
	}
}
