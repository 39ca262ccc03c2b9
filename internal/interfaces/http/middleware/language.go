package middleware

import (
	"github.com/gin-gonic/gin"

	"stockdesk/internal/shared/i18n"
)

const langCookie = "lang"

// Language picks the UI language from ?lang=, then the lang cookie, then Accept-Language.
// An explicit ?lang= choice is remembered in the cookie.
func Language(negotiator *i18n.Negotiator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var prefs []string
		if q := c.Query("lang"); q != "" {
			lang := negotiator.Pick(q)
			c.SetCookie(langCookie, string(lang), 365*24*3600, "/", "", false, true)
			prefs = append(prefs, string(lang))
		} else if cookie, err := c.Cookie(langCookie); err == nil && cookie != "" {
			prefs = append(prefs, cookie)
		}
		if header := c.GetHeader("Accept-Language"); header != "" {
			prefs = append(prefs, header)
		}

		c.Set(ContextKeyLang, negotiator.Pick(prefs...))
		c.Next()
	}
}
