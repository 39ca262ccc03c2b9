package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockdesk/internal/domain/permission"
	"stockdesk/internal/shared/logger"
)

type PermissionMiddleware struct {
	enforcer permission.Enforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer permission.Enforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission runs onDenied when the current role lacks p. Enforcer errors deny.
func (m *PermissionMiddleware) RequirePermission(p permission.Permission, onDenied gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		allowed, err := m.enforcer.Enforce(principal.Role, p)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "user_id", principal.UserID, "permission", p.String())
			allowed = false
		}

		if !allowed {
			m.logger.Warnw("permission denied", "user_id", principal.UserID, "role", principal.Role, "permission", p.String())
			onDenied(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
