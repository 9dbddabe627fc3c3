package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/notewall/notewall-backend/internal/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups every API handler mounted by RegisterRoutes
type Handlers struct {
	Notes        *NoteHandler
	Comments     *CommentHandler
	Interactions *InteractionHandler
	Settings     *SettingsHandler
	WebSocket    *WebSocketHandler
}

// RegisterRoutes sets up all API routes. Reads accept an optional token so
// likedByMe can be filled; writes require one. Interaction writes are rate limited.
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rl *middleware.RateLimiter, h Handlers) {
	api := e.Group("/api/v1")
	limited := middleware.RateLimitMiddleware(rl)

	// Note routes
	notes := api.Group("/notes")
	notes.GET("", h.Notes.ListNotes, authMiddleware.Optional())
	notes.GET("/:id", h.Notes.GetNote, authMiddleware.Optional())
	notes.POST("", h.Notes.CreateNote, authMiddleware.Authenticate(), limited)
	notes.PATCH("/:id", h.Notes.UpdateNote, authMiddleware.Authenticate())
	notes.DELETE("/:id", h.Notes.DeleteNote, authMiddleware.Authenticate())

	// Comment routes
	notes.GET("/:id/comments", h.Comments.ListComments, authMiddleware.Optional())
	notes.POST("/:id/comments", h.Comments.CreateComment, authMiddleware.Authenticate(), limited)
	comments := api.Group("/comments")
	comments.Use(authMiddleware.Authenticate())
	comments.DELETE("/:id", h.Comments.DeleteComment)

	// Interaction routes (protected, rate limited)
	api.POST("/likes", h.Interactions.ToggleLike, authMiddleware.Authenticate(), limited)
	api.POST("/views", h.Interactions.TrackView, authMiddleware.Authenticate(), limited)
	api.POST("/reports", h.Interactions.Report, authMiddleware.Authenticate(), limited)

	// Settings routes (protected)
	settings := api.Group("/settings")
	settings.Use(authMiddleware.Authenticate())
	settings.GET("", h.Settings.GetSettings)
	settings.PATCH("", h.Settings.UpdateSettings)

	// Real-time feed
	api.GET("/ws", h.WebSocket.HandleWS)

	// API docs
	api.GET("/openapi.json", ServeOpenAPI3Spec)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
