// Package server assembles the HTTP router for the marketplace API.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carbon-shop/marketplace-backend/internal/audit"
	"carbon-shop/marketplace-backend/internal/auth"
	"carbon-shop/marketplace-backend/internal/projects"
	"carbon-shop/marketplace-backend/internal/users"
)

// Handlers are the route groups mounted under /api.
type Handlers struct {
	Auth     *auth.Handler
	Users    *users.Handler
	Projects *projects.Handler
	Audit    *audit.Handler
}

// NewRouter mounts /health publicly and every other route behind bearer
// token authentication.
func NewRouter(tokens *auth.TokenService, handlers Handlers, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger), CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	api := router.Group("/api", auth.RequireAuth(tokens))
	{
		if handlers.Auth != nil {
			handlers.Auth.RegisterRoutes(api)
		}
		if handlers.Users != nil {
			handlers.Users.RegisterRoutes(api)
		}
		if handlers.Projects != nil {
			handlers.Projects.RegisterRoutes(api)
		}
		if handlers.Audit != nil {
			handlers.Audit.RegisterRoutes(api)
		}
	}

	return router
}
