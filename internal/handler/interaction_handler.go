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

// InteractionHandler handles likes, views and reports
type InteractionHandler struct {
	interactionService *service.InteractionService
}

// NewInteractionHandler creates a new InteractionHandler
func NewInteractionHandler(interactionService *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

// ReportResponse represents a report in API responses
type ReportResponse struct {
	ID         string  `json:"id"`
	TargetID   string  `json:"targetId"`
	TargetType string  `json:"targetType"`
	Reason     *string `json:"reason,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

// ToggleLike godoc
// @Summary Like or unlike a note or comment
// @Tags interactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ToggleLikeRequest true "Like target"
// @Success 200 {object} domain.LikeResult
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /likes [post]
func (h *InteractionHandler) ToggleLike(c echo.Context) error {
	userID := middleware.GetAuth0ID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	body, err := readBody(c)
	if err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, err := dto.DecodeToggleLike(body)
	if err != nil {
		return NewDecodeError(c, err)
	}

	result, err := h.interactionService.ToggleLike(c.Request().Context(), userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrTargetNotFound) {
			return NewNotFoundError(c, "Target not found")
		}
		log.Error().Err(err).Str("user_id", userID).Str("target_id", input.TargetID).Msg("Failed to toggle like")
		return NewInternalError(c, "Failed to toggle like")
	}

	return c.JSON(http.StatusOK, result)
}

// TrackView godoc
// @Summary Record a note view
// @Description A first view answers 201, a repeat 200
// @Tags interactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TrackViewRequest true "Viewed note"
// @Success 200 {object} service.TrackViewResult
// @Success 201 {object} service.TrackViewResult
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /views [post]
func (h *InteractionHandler) TrackView(c echo.Context) error {
	userID := middleware.GetAuth0ID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	body, err := readBody(c)
	if err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	noteID, err := dto.DecodeTrackView(body)
	if err != nil {
		return NewDecodeError(c, err)
	}

	result, err := h.interactionService.TrackView(c.Request().Context(), userID, noteID)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return NewNotFoundError(c, "Note not found")
		}
		log.Error().Err(err).Str("user_id", userID).Str("note_id", noteID).Msg("Failed to track view")
		return NewInternalError(c, "Failed to track view")
	}

	status := http.StatusOK
	if result.Recorded {
		status = http.StatusCreated
	}
	return c.JSON(status, result)
}

// Report godoc
// @Summary Report a note or comment
// @Tags interactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ReportRequest true "Report"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /reports [post]
func (h *InteractionHandler) Report(c echo.Context) error {
	userID := middleware.GetAuth0ID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	body, err := readBody(c)
	if err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, err := dto.DecodeReport(body)
	if err != nil {
		return NewDecodeError(c, err)
	}

	report, err := h.interactionService.Report(c.Request().Context(), userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrTargetNotFound) {
			return NewNotFoundError(c, "Target not found")
		}
		log.Error().Err(err).Str("user_id", userID).Str("target_id", input.TargetID).Msg("Failed to create report")
		return NewInternalError(c, "Failed to create report")
	}

	return c.JSON(http.StatusCreated, ReportResponse{
		ID:         report.ID,
		TargetID:   report.TargetID,
		TargetType: string(report.TargetType),
		Reason:     report.Reason,
		CreatedAt:  report.CreatedAt.Format(time.RFC3339),
	})
}
