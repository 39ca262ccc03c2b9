package routes

import (
	"github.com/gin-gonic/gin"

	"stockdesk/internal/domain/permission"
	"stockdesk/internal/interfaces/http/handlers"
	"stockdesk/internal/interfaces/http/middleware"
)

type AdminRouteConfig struct {
	UserHandler          *handlers.UserHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	OnDenied             gin.HandlerFunc
}

func SetupAdminRoutes(engine *gin.Engine, config *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(
		config.AuthMiddleware.RequireAuth(),
		config.PermissionMiddleware.RequirePermission(permission.ListUsers, config.OnDenied),
	)
	{
		admin.GET("/users", config.UserHandler.ListUsers)
	}
}
