package routes

import (
	"github.com/gin-gonic/gin"

	"stockdesk/internal/interfaces/http/handlers"
	"stockdesk/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for sign-in routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	LoginLimiter   *middleware.LoginRateLimiter
}

// SetupAuthRoutes configures the landing, login and logout routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	engine.GET("/", cfg.AuthMiddleware.OptionalAuth(), cfg.AuthHandler.Root)

	login := engine.Group("/login")
	login.Use(cfg.AuthMiddleware.OptionalAuth(), middleware.RequireGuest())
	{
		login.GET("", cfg.AuthHandler.ShowLogin)
		login.POST("", cfg.LoginLimiter.Limit(cfg.AuthHandler.RateLimited), cfg.AuthHandler.Login)
	}

	engine.GET("/logout", cfg.AuthMiddleware.OptionalAuth(), cfg.AuthHandler.Logout)
}
