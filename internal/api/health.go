package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is reported by the liveness endpoint
var Version = "1.0.0"

// Handler handles the liveness endpoint
type Handler struct{}

// HealthResponse represents the liveness response structure
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// HealthHandler reports that the process is up; component checks live under /api/health
func (h *Handler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   Version,
	})
}

// RegisterHealthRoutes registers health check related routes
func (h *Handler) RegisterHealthRoutes(router gin.IRoutes) {
	router.GET("/health", h.HealthHandler)
}
