package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockdesk/internal/application/user/usecases"
	"stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/i18n"
	"stockdesk/internal/shared/logger"
	"stockdesk/internal/shared/utils"
)

type AuthMiddleware struct {
	authenticate usecases.AuthenticateExecutor
	cookies      utils.CookieOptions
	logger       logger.Interface
}

func NewAuthMiddleware(authenticate usecases.AuthenticateExecutor, cookies utils.CookieOptions, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		authenticate: authenticate,
		cookies:      cookies,
		logger:       logger,
	}
}

// RequireAuth sends anonymous visitors to the login page.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.resolve(c) {
			c.Next()
			return
		}
		utils.RedirectWithFlash(c, "/login", utils.FlashInfo, i18n.T(CurrentLang(c), "login.required"))
		c.Abort()
	}
}

// OptionalAuth loads the principal when the cookie is valid and never blocks.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.resolve(c)
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context) bool {
	token := utils.SessionToken(c)
	if token == "" {
		return false
	}

	principal, err := m.authenticate.Execute(c.Request.Context(), usecases.AuthenticateQuery{Token: token})
	if err != nil {
		if !errors.IsUnauthorizedError(err) {
			m.logger.Errorw("failed to authenticate request", "path", c.Request.URL.Path, "error", err)
		}
		utils.ClearSessionCookie(c, m.cookies)
		return false
	}

	SetPrincipal(c, principal)
	return true
}

// RequireGuest redirects signed-in users away from the login page.
func RequireGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentPrincipal(c) != nil && c.Request.Method == http.MethodGet {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
