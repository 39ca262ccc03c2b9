package routes

import (
	"github.com/gin-gonic/gin"

	"stockdesk/internal/domain/permission"
	tickethandlers "stockdesk/internal/interfaces/http/handlers/ticket"
	"stockdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	// OnCreateDenied answers roles that may not open the new-ticket form.
	OnCreateDenied gin.HandlerFunc
	OnDenied       gin.HandlerFunc
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	perm := config.PermissionMiddleware

	engine.GET("/dashboard",
		config.AuthMiddleware.RequireAuth(),
		perm.RequirePermission(permission.ViewDashboard, config.OnDenied),
		config.TicketHandler.Dashboard)

	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		// /new is registered before /:id so the static segment wins.
		canCreate := perm.RequirePermission(permission.CreateTicket, config.OnCreateDenied)
		tickets.GET("/new", canCreate, config.TicketHandler.NewTicketForm)
		tickets.POST("/new", canCreate, config.TicketHandler.CreateTicket)

		// Ownership is checked by the use cases.
		canView := perm.RequirePermission(permission.ViewTicket, config.OnDenied)
		tickets.GET("/:id", canView, config.TicketHandler.Detail)
		tickets.POST("/:id", canView, config.TicketHandler.PostAction)
	}
}
