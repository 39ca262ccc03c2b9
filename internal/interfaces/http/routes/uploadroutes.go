package routes

import (
	"github.com/gin-gonic/gin"

	"stockdesk/internal/domain/permission"
	"stockdesk/internal/interfaces/http/handlers"
	"stockdesk/internal/interfaces/http/middleware"
)

type UploadRouteConfig struct {
	UploadHandler        *handlers.UploadHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	OnDenied             gin.HandlerFunc
}

func SetupUploadRoutes(engine *gin.Engine, config *UploadRouteConfig) {
	engine.GET("/uploads/:filename",
		config.AuthMiddleware.RequireAuth(),
		config.PermissionMiddleware.RequirePermission(permission.ReadUpload, config.OnDenied),
		config.UploadHandler.Serve)
}
