package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "supportdesk/internal/interfaces/http/handlers/ticket"
	"supportdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	AdminTicketHandler   *tickethandlers.AdminTicketHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimiter          *middleware.RateLimiter
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	poll := config.RateLimiter.Limit()

	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		tickets.POST("", config.TicketHandler.CreateTicket)
		tickets.GET("", poll, config.TicketHandler.ListTickets)

		// Staff acknowledgement lives under /tickets but is gated by policy
		tickets.POST("/mark-read",
			config.PermissionMiddleware.RequirePermission(),
			config.AdminTicketHandler.MarkRead)

		// Conversation thread
		tickets.GET("/:id/messages", poll, config.TicketHandler.ListMessages)
		tickets.POST("/:id/messages", config.TicketHandler.AppendMessage)

		// Generic parameterized routes (must come LAST)
		tickets.DELETE("/:id", config.TicketHandler.DeleteTicket)
	}

	admin := engine.Group("/admin/tickets")
	admin.Use(config.AuthMiddleware.RequireAuth())
	admin.Use(config.PermissionMiddleware.RequirePermission())
	{
		admin.GET("", poll, config.AdminTicketHandler.ListTickets)
		admin.GET("/groups", poll, config.AdminTicketHandler.GroupedTickets)

		admin.GET("/:id/messages", poll, config.AdminTicketHandler.ListMessages)
		admin.POST("/:id/messages", config.AdminTicketHandler.Reply)
		admin.POST("/:id/close", config.AdminTicketHandler.Close)
	}
}
