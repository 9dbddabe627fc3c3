package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/notewall/notewall-backend/internal/dto"
	"github.com/notewall/notewall-backend/internal/middleware"
	"github.com/notewall/notewall-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// SettingsHandler handles privacy settings requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// SettingsResponse represents the caller's settings
type SettingsResponse struct {
	Anonymous     bool `json:"anonymous"`
	AllowComments bool `json:"allowComments"`
}

// GetSettings godoc
// @Summary Get privacy settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SettingsResponse
// @Failure 401 {object} ProblemDetails
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	userID := middleware.GetAuth0ID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	settings, err := h.settingsService.GetSettings(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get settings")
		return NewInternalError(c, "Failed to get settings")
	}

	return c.JSON(http.StatusOK, SettingsResponse{Anonymous: settings.Anonymous, AllowComments: settings.AllowComments})
}

// UpdateSettings godoc
// @Summary Update privacy settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateSettingsRequest true "Toggles to change"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /settings [patch]
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	userID := middleware.GetAuth0ID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	body, err := readBody(c)
	if err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, err := dto.DecodeUpdateSettings(body)
	if err != nil {
		return NewDecodeError(c, err)
	}

	settings, err := h.settingsService.UpdateSettings(c.Request().Context(), userID, input)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update settings")
		return NewInternalError(c, "Failed to update settings")
	}

	log.Info().Str("user_id", userID).Bool("anonymous", settings.Anonymous).Bool("allow_comments", settings.AllowComments).Msg("Settings updated")

	return c.JSON(http.StatusOK, SettingsResponse{Anonymous: settings.Anonymous, AllowComments: settings.AllowComments})
}
