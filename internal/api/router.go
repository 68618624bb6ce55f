package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgsite-blog/internal/config"
	"github.com/orgsite-blog/internal/repository"
	"github.com/orgsite-blog/internal/service"
	"github.com/orgsite-blog/pkg/logger"
	"github.com/rs/zerolog"
)

const healthCheckTimeout = 2 * time.Second

// Frontend serves the server-rendered pages next to the API
type Frontend interface {
	// Mount registers the page routes. adminGuard redirects requests without
	// a valid session to the login page.
	Mount(router *gin.Engine, adminGuard gin.HandlerFunc)
	// Entry renders the entry document for unmatched deep links
	Entry(c *gin.Context)
}

// NewRouter creates and configures the Gin router. frontend may be nil.
func NewRouter(services *service.Services, store repository.HealthChecker, frontend Frontend, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = false

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.CORS.AllowedOrigins))

	errs := newErrorResponder(cfg.IsProduction(), log)
	session := newSessionGuard(services.Auth, cfg.Auth.CookieName, errs)

	// Handlers
	authHandler := NewAuthHandler(services, cfg, errs, log)
	postHandler := NewPostHandler(services, errs, log)

	// Health check
	router.GET("/health", healthCheck(store))

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/verify", authHandler.Verify)
			authRoutes.POST("/logout", authHandler.Logout)
		}

		blogs := api.Group("/blogs")
		{
			blogs.GET("", postHandler.List)
			blogs.GET("/:slug", postHandler.GetBySlug)
			blogs.POST("/increment-views/:slug", postHandler.IncrementViews)
			blogs.POST("/increment-likes/:slug", postHandler.IncrementLikes)

			blogs.POST("", session.RequireJSON(), postHandler.Create)
			blogs.PUT("/:id", session.RequireJSON(), postHandler.Update)
			blogs.DELETE("/:id", session.RequireJSON(), postHandler.Delete)
		}

		admin := api.Group("/admin", session.RequireJSON())
		{
			admin.GET("/stats", postHandler.Stats)
		}
	}

	if frontend != nil {
		frontend.Mount(router, session.RequireRedirect("/admin"))
	}

	router.NoRoute(newFallbackHandler(cfg.Web.DistDir, frontend))

	return router
}

// healthCheck returns the health status including store reachability
func healthCheck(store repository.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := contextWithTimeout(c, healthCheckTimeout)
		defer cancel()

		status, code, storeState := "healthy", http.StatusOK, "up"
		if store != nil {
			if err := store.HealthCheck(ctx); err != nil {
				status, code, storeState = "unhealthy", http.StatusServiceUnavailable, "down"
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   logger.ServiceName,
			"store":     storeState,
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  "internal",
				})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware answers only for origins in the allow-list, with credentials
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimSuffix(origin, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && allowed[origin] {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
