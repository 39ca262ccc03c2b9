package middleware

import (
	"github.com/gin-gonic/gin"

	"stockdesk/internal/application/user/dto"
	"stockdesk/internal/shared/i18n"
)

const (
	ContextKeyPrincipal = "principal"
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyLang      = "lang"
)

// CurrentPrincipal returns the authenticated user, or nil on public routes.
func CurrentPrincipal(c *gin.Context) *dto.Principal {
	v, ok := c.Get(ContextKeyPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*dto.Principal)
	return p
}

// SetPrincipal stores p the way RequireAuth does.
func SetPrincipal(c *gin.Context, p *dto.Principal) {
	c.Set(ContextKeyPrincipal, p)
	c.Set(ContextKeyUserID, p.UserID)
	c.Set(ContextKeyUserRole, p.Role)
}

// CurrentLang returns the negotiated UI language, RU when Language did not run.
func CurrentLang(c *gin.Context) i18n.Lang {
	if v, ok := c.Get(ContextKeyLang); ok {
		if lang, ok := v.(i18n.Lang); ok {
			return lang
		}
	}
	return i18n.RU
}
