package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"character-chat/backend/internal/models"
	"character-chat/backend/internal/service"
	apperrors "character-chat/backend/pkg/errors"
)

// CharacterController handles character and per-character session endpoints
type CharacterController struct {
	characters *service.CharacterService
	sessions   *service.SessionService
}

// NewCharacterController creates a new character controller
func NewCharacterController(characters *service.CharacterService, sessions *service.SessionService) *CharacterController {
	return &CharacterController{characters: characters, sessions: sessions}
}

// RegisterRoutes registers the routes for the character controller
func (h *CharacterController) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/characters")
	{
		group.GET("", h.ListCharacters)
		group.POST("", h.CreateCharacter)
		group.GET("/:id", h.GetCharacter)
		group.DELETE("/:id", h.DeleteCharacter)
		group.GET("/:id/sessions", h.ListSessions)
	}
}

func (h *CharacterController) CreateCharacter(c *gin.Context) {
	var req models.CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequestWithDetails(apperrors.CodeInvalidRequest, "Invalid character payload", err.Error()))
		return
	}

	character, err := h.characters.CreateCharacter(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func (h *CharacterController) ListCharacters(c *gin.Context) {
	characters, err := h.characters.ListCharacters(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (h *CharacterController) GetCharacter(c *gin.Context) {
	id, ok := characterID(c)
	if !ok {
		return
	}

	character, err := h.characters.GetCharacter(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *CharacterController) DeleteCharacter(c *gin.Context) {
	id, ok := characterID(c)
	if !ok {
		return
	}

	if err := h.characters.DeleteCharacter(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "character deleted"})
}

// ListSessions returns the most recent sessions of the character, newest first
func (h *CharacterController) ListSessions(c *gin.Context) {
	id, ok := characterID(c)
	if !ok {
		return
	}

	sessions, err := h.sessions.ListSessions(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// characterID parses the :id path parameter, recording a 400 on failure
func characterID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		_ = c.Error(apperrors.BadRequestWithDetails(apperrors.CodeInvalidRequest, "Invalid character ID", c.Param("id")))
		return 0, false
	}
	return uint(id), true
}
