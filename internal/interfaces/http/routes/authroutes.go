package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/helpdesk-inc/helpdesk/internal/interfaces/http/handlers"
	"github.com/helpdesk-inc/helpdesk/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	LoginLimit     gin.HandlerFunc
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	engine.POST("/login", cfg.LoginLimit, cfg.AuthHandler.Login)
	engine.POST("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Logout)
}
