package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"character-chat/backend/internal/models"
	"character-chat/backend/internal/service"
	apperrors "character-chat/backend/pkg/errors"
)

// MessageController handles chat turns, history and session maintenance
type MessageController struct {
	chat     *service.ChatService
	sessions *service.SessionService
}

// NewMessageController creates a new message controller
func NewMessageController(chat *service.ChatService, sessions *service.SessionService) *MessageController {
	return &MessageController{chat: chat, sessions: sessions}
}

// RegisterRoutes registers the routes for the message controller
func (h *MessageController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/chat", h.Chat)
	router.GET("/history", h.History)

	sessions := router.Group("/sessions")
	{
		sessions.DELETE("/:id", h.DeleteSession)
		sessions.DELETE("/:id/messages", h.ClearSession)
	}
}

// Chat runs one chat turn against the character
func (h *MessageController) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequestWithDetails(apperrors.CodeInvalidRequest, "Invalid chat payload", err.Error()))
		return
	}

	resp, err := h.chat.Chat(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History returns the full chronological message list of a session
func (h *MessageController) History(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		_ = c.Error(apperrors.NewBadRequestError(apperrors.CodeInvalidRequest, "session_id query parameter is required"))
		return
	}

	messages, err := h.sessions.History(c.Request.Context(), sessionID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *MessageController) DeleteSession(c *gin.Context) {
	if err := h.sessions.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "session deleted"})
}

// ClearSession removes the session's messages and memories, keeping the session
func (h *MessageController) ClearSession(c *gin.Context) {
	if err := h.sessions.ClearSession(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "session cleared"})
}
