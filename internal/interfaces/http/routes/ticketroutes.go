package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/helpdesk-inc/helpdesk/internal/interfaces/http/handlers/ticket"
)

type TicketRouteConfig struct {
	TicketHandler *tickethandlers.TicketHandler
	// CreateLimit guards ticket creation; it may be a pass-through.
	CreateLimit gin.HandlerFunc
}

// SetupTicketRoutes registers the ticket endpoints. Access decisions depend
// on the caller's identity and are taken in the use cases, so no route here
// is behind RequireAuth.
func SetupTicketRoutes(engine *gin.Engine, cfg *TicketRouteConfig) {
	engine.POST("/ticket", cfg.CreateLimit, cfg.TicketHandler.CreateTicket)
	engine.GET("/ticket/:id", cfg.TicketHandler.GetTicket)
	engine.POST("/ticket/:id", cfg.TicketHandler.AddMessage)

	engine.GET("/edit_ticket/:id", cfg.TicketHandler.GetEditTicket)
	engine.POST("/edit_ticket/:id", cfg.TicketHandler.UpdateTicket)

	engine.GET("/my_tickets", cfg.TicketHandler.ListMyTickets)
	engine.GET("/uploads/:ticket_id/:filename", cfg.TicketHandler.DownloadAttachment)

	// Admin capabilities are checked by the access gate.
	engine.GET("/admin", cfg.TicketHandler.ListAdminTickets)
	engine.GET("/check_new_tickets", cfg.TicketHandler.CheckNewTickets)
	engine.POST("/update_ticket/:id", cfg.TicketHandler.UpdateStatus)
}
