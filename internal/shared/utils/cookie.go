package utils

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie   = "stockdesk_session"
	CSRFTokenCookie = "csrf_token"
	CSRFFormField   = "csrf_token"
	CSRFTokenHeader = "X-CSRF-Token"
	csrfTokenBytes  = 32
)

// CookieOptions holds the attributes shared by every cookie the app sets.
type CookieOptions struct {
	Path   string
	Secure bool
}

func (o CookieOptions) path() string {
	if o.Path == "" {
		return "/"
	}
	return o.Path
}

// SetSessionCookie stores the signed session token in an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, opts CookieOptions, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, opts.path(), "", opts.Secure, true)
}

func ClearSessionCookie(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, opts.path(), "", opts.Secure, true)
}

// SessionToken returns the session cookie value or an empty string.
func SessionToken(c *gin.Context) string {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return token
}

// EnsureCSRFCookie returns the current CSRF token, issuing a new cookie when absent.
// Forms echo the token in a hidden field.
func EnsureCSRFCookie(c *gin.Context, opts CookieOptions) string {
	if token, err := c.Cookie(CSRFTokenCookie); err == nil && token != "" {
		return token
	}
	token := generateCSRFToken()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CSRFTokenCookie, token, 0, opts.path(), "", opts.Secure, true)
	// Make the fresh token visible to handlers rendering in this same request.
	c.Request.AddCookie(&http.Cookie{Name: CSRFTokenCookie, Value: token})
	return token
}

func generateCSRFToken() string {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic("csrf: failed to generate random token: " + err.Error())
	}
	return hex.EncodeToString(b)
}
