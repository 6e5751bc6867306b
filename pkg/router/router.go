package router

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"character-chat/backend/internal/api"
	"character-chat/backend/pkg/config"
	"character-chat/backend/pkg/di"
	"character-chat/backend/pkg/errors"
	"character-chat/backend/pkg/logger"
	"character-chat/backend/pkg/middleware"
)

// Track server start time for uptime calculations
var startTime = time.Now()

// Router is the main router for the application
type Router struct {
	Engine      *gin.Engine
	Container   *di.Container
	Logger      *logger.Logger
	Config      *config.Config
	API         *gin.RouterGroup
	rateLimiter *middleware.RateLimiter
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	logger.SetGlobal(container.Logger)
	cfg := container.Config

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		container.Logger.Warn("Invalid trusted proxies, trusting none", "error", err.Error())
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(logger.Middleware(container.Logger))
	engine.Use(middleware.TracingMiddleware(cfg.Observability.ServiceName))
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())
	engine.Use(corsMiddleware(cfg.Security.AllowedOrigins))

	r := &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Config:    cfg,
	}

	// A zero limit leaves the limiter off
	if cfg.Security.RateLimit > 0 {
		opts := middleware.DefaultRateLimiterOptions()
		opts.Limit = rate.Limit(cfg.Security.RateLimit)
		opts.Burst = cfg.Security.RateLimitBurst
		r.rateLimiter = middleware.NewRateLimiter(container.Logger, opts)
		engine.Use(r.rateLimiter.Middleware())
	}

	r.API = engine.Group("/api")
	return r
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	liveness := &api.Handler{}
	liveness.RegisterHealthRoutes(r.Engine)

	r.API.GET("/health", r.Container.Health.Handler())
	r.API.GET("/status", r.statusHandler())
	r.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	characterController := api.NewCharacterController(r.Container.CharacterService, r.Container.SessionService)
	characterController.RegisterRoutes(r.API)

	messageController := api.NewMessageController(r.Container.ChatService, r.Container.SessionService)
	messageController.RegisterRoutes(r.API)

	r.setupStatic()
}

// Close releases background resources held by middleware
func (r *Router) Close() {
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}
}

// setupStatic serves a bundled frontend when STATIC_DIR points at one
func (r *Router) setupStatic() {
	dir := r.Config.Server.StaticDir
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		r.Logger.Warn("Static directory not found, frontend disabled", "path", dir)
		return
	}

	r.Engine.Static("/static", dir)
	index := filepath.Join(dir, "index.html")
	if fileExists(index) {
		r.Engine.StaticFile("/", index)
	}
	r.Logger.Info("Serving frontend", "path", dir)
}

// statusHandler reports uptime and environment
func (r *Router) statusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"env":     r.Config.Server.Env,
			"uptime":  time.Since(startTime).Round(time.Second).String(),
			"time":    time.Now().Format(time.RFC3339),
			"version": api.Version,
		})
	}
}

func corsMiddleware(allowed []string) gin.HandlerFunc {
	allowAll := len(allowed) == 0
	origins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
		}
		origins[o] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && origins[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, Origin, Cache-Control, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, X-Trace-ID")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
