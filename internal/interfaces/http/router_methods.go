package http

import (
	"github.com/gin-gonic/gin"

	"stockdesk/internal/interfaces/http/middleware"
	"stockdesk/internal/interfaces/http/routes"
	"stockdesk/internal/shared/i18n"
	"stockdesk/internal/shared/utils"
)

// uploadSlack covers the non-file parts of a multipart form.
const uploadSlack = 1 << 20

// SetupRoutes installs the global middlewares and every route.
func (r *Router) SetupRoutes() {
	view := r.view
	negotiator := i18n.NewNegotiator(i18n.ParseLang(r.cfg.Server.DefaultLanguage))

	r.engine.Use(middleware.Recovery(r.log, view.InternalError))
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Language(negotiator))
	r.engine.Use(middleware.BodyLimit(r.cfg.Server.MaxUploadBytes() + uploadSlack))
	r.engine.Use(middleware.CSRF(view.CSRFFailure))

	r.engine.NoRoute(view.NotFound)
	r.engine.GET("/healthz", r.hdlrs.healthHandler.HealthCheck)

	r.setupAuthRoutes()
	r.setupTicketRoutes()
	r.setupUploadRoutes()
	r.setupAdminRoutes()
}

func (r *Router) setupAuthRoutes() {
	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:    r.hdlrs.authHandler,
		AuthMiddleware: r.authMiddleware,
		LoginLimiter:   r.loginLimiter,
	})
}

func (r *Router) setupTicketRoutes() {
	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:        r.hdlrs.ticketHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		OnCreateDenied: func(c *gin.Context) {
			r.view.Redirect(c, "/dashboard", utils.FlashDanger, "access.create_denied")
		},
		OnDenied: r.view.Forbidden,
	})
}

func (r *Router) setupUploadRoutes() {
	routes.SetupUploadRoutes(r.engine, &routes.UploadRouteConfig{
		UploadHandler:        r.hdlrs.uploadHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		OnDenied:             r.view.Forbidden,
	})
}

func (r *Router) setupAdminRoutes() {
	routes.SetupAdminRoutes(r.engine, &routes.AdminRouteConfig{
		UserHandler:          r.hdlrs.userHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		OnDenied: func(c *gin.Context) {
			r.view.Redirect(c, "/dashboard", utils.FlashDanger, "access.role_denied")
		},
	})
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
