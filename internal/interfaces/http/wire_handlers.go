package http

import (
	"stockdesk/internal/infrastructure/template"
	"stockdesk/internal/interfaces/http/handlers"
	"stockdesk/internal/interfaces/http/handlers/common"
	ticketHandlers "stockdesk/internal/interfaces/http/handlers/ticket"
	"stockdesk/internal/interfaces/http/middleware"
	"stockdesk/internal/shared/services/markdown"
	"stockdesk/internal/shared/utils"
)

// Version is reported by the health endpoint.
var Version = "dev"

// allHandlers holds the HTTP handler instances.
type allHandlers struct {
	authHandler   *handlers.AuthHandler
	userHandler   *handlers.UserHandler
	uploadHandler *handlers.UploadHandler
	healthHandler *handlers.HealthHandler
	ticketHandler *ticketHandlers.Handler
}

func (c *Container) initHandlers() error {
	cfg := c.cfg
	log := c.log
	ucs := c.ucs

	utils.RegisterValidators()

	cookies := utils.CookieOptions{Path: "/", Secure: cfg.Auth.CookieSecure}
	c.view = common.NewView(cookies, markdown.NewRenderer(), nil, log.Named("view"))

	pages, err := template.NewPageLoader(cfg.Server.TemplatesDir, log).Load(c.view.FuncMap())
	if err != nil {
		return err
	}
	c.engine.SetHTMLTemplate(pages)

	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}

	c.authMiddleware = middleware.NewAuthMiddleware(ucs.authenticate, cookies, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)
	c.loginLimiter = middleware.NewLoginRateLimiter(c.limiter, cfg.RateLimit.LoginPerMinute, log)

	c.hdlrs = &allHandlers{
		authHandler:   handlers.NewAuthHandler(ucs.login, ucs.logout, c.view, log),
		userHandler:   handlers.NewUserHandler(ucs.listUsers, c.view),
		uploadHandler: handlers.NewUploadHandler(c.uploads, c.view, log),
		healthHandler: handlers.NewHealthHandler(sqlDB, Version, log),
		ticketHandler: ticketHandlers.NewHandler(
			ucs.createTicket, ucs.changeStatus, ucs.addComment, ucs.listTickets, ucs.getTicket,
			c.uploads, c.view, log,
		),
	}
	return nil
}
