package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"character-chat/backend/internal/api"
	"character-chat/backend/pkg/validator"
)

// AddOpenAPIValidation validates /api requests against the embedded OpenAPI
// document and serves the document at /api/docs/openapi.yaml.
// It must run before SetupRoutes so the middleware covers the API group.
func (r *Router) AddOpenAPIValidation() error {
	v, err := validator.NewOpenAPIValidator(api.OpenAPISpec)
	if err != nil {
		return err
	}

	r.API.Use(v.Middleware())
	r.Engine.GET("/api/docs/openapi.yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", api.OpenAPISpec)
	})
	r.Logger.Info("OpenAPI validation enabled", "url", "/api/docs/openapi.yaml")
	return nil
}
