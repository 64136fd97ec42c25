package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/helpdesk-inc/helpdesk/docs"
	"github.com/helpdesk-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/helpdesk-inc/helpdesk/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.CustomLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(c.authMiddleware.OptionalAuth())

	c.engine.GET("/health", c.healthHandler.HealthCheck)

	if c.cfg.Server.Mode == gin.DebugMode {
		c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler:    c.authHandler,
		AuthMiddleware: c.authMiddleware,
		LoginLimit:     middleware.RateLimit(c.loginLimiter, c.log),
	})

	routes.SetupTicketRoutes(c.engine, &routes.TicketRouteConfig{
		TicketHandler: c.ticketHandler,
		CreateLimit:   middleware.RateLimit(c.createLimiter, c.log),
	})
}

// GetEngine returns the Gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}
