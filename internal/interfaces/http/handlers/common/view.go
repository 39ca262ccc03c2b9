// Package common renders pages and maps application errors to responses for the HTML handlers.
package common

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockdesk/internal/domain/permission"
	vo "stockdesk/internal/domain/ticket/valueobjects"
	uservo "stockdesk/internal/domain/user/valueobjects"
	"stockdesk/internal/interfaces/http/middleware"
	"stockdesk/internal/shared/biztime"
	"stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/i18n"
	"stockdesk/internal/shared/logger"
	"stockdesk/internal/shared/services/markdown"
	"stockdesk/internal/shared/utils"
)

// Nav tells the layout which links to show.
type Nav struct {
	CanCreate    bool
	CanListUsers bool
}

// View renders pages with the fields every layout needs.
type View struct {
	cookies  utils.CookieOptions
	markdown markdown.Renderer
	location *time.Location
	logger   logger.Interface
}

func NewView(cookies utils.CookieOptions, md markdown.Renderer, location *time.Location, logger logger.Interface) *View {
	if location == nil {
		location = time.UTC
	}
	return &View{
		cookies:  cookies,
		markdown: md,
		location: location,
		logger:   logger,
	}
}

// Cookies returns the cookie attributes handlers should use.
func (v *View) Cookies() utils.CookieOptions {
	return v.cookies
}

// FuncMap is installed on the page templates.
func (v *View) FuncMap() template.FuncMap {
	return template.FuncMap{
		"t": i18n.T,
		"statusLabel": func(lang i18n.Lang, s vo.TicketStatus) string {
			return i18n.T(lang, "status."+s.String())
		},
		"roleLabel": func(lang i18n.Lang, r uservo.Role) string {
			return i18n.T(lang, "role."+r.String())
		},
		"fmtTime":  v.formatTime,
		"markdown": v.markdown.Render,
	}
}

func (v *View) formatTime(value any) string {
	switch t := value.(type) {
	case time.Time:
		return biztime.Format(&t, v.location)
	case *time.Time:
		return biztime.Format(t, v.location)
	default:
		return ""
	}
}

// Render executes page name. data may be nil; base fields are added without overwriting.
func (v *View) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	lang := middleware.CurrentLang(c)
	principal := middleware.CurrentPrincipal(c)

	nav := Nav{}
	if principal != nil {
		nav.CanCreate = permission.Allows(principal.Role, permission.CreateTicket)
		nav.CanListUsers = permission.Allows(principal.Role, permission.ListUsers)
	}

	setDefault(data, "Lang", lang)
	setDefault(data, "User", principal)
	setDefault(data, "Nav", nav)
	setDefault(data, "Title", "")
	setDefault(data, "Flashes", utils.PopFlashes(c))
	setDefault(data, "CSRF", utils.EnsureCSRFCookie(c, v.cookies))

	c.HTML(status, name, data)
}

func setDefault(data gin.H, key string, value any) {
	if _, ok := data[key]; !ok {
		data[key] = value
	}
}

// T translates key into the request language.
func (v *View) T(c *gin.Context, key string) string {
	return i18n.T(middleware.CurrentLang(c), key)
}

// Redirect queues a translated flash message and redirects with 303.
func (v *View) Redirect(c *gin.Context, location string, kind utils.FlashKind, key string) {
	utils.RedirectWithFlash(c, location, kind, v.T(c, key))
}

// ErrorPage renders the error page with a translated message.
func (v *View) ErrorPage(c *gin.Context, status int, key string) {
	v.Render(c, status, "error.html", gin.H{
		"Title":   v.T(c, "error.title"),
		"Status":  status,
		"Message": v.T(c, key),
	})
}

func (v *View) Forbidden(c *gin.Context) {
	v.ErrorPage(c, http.StatusForbidden, "access.denied")
}

func (v *View) NotFound(c *gin.Context) {
	v.ErrorPage(c, http.StatusNotFound, "error.not_found")
}

func (v *View) InternalError(c *gin.Context) {
	v.ErrorPage(c, http.StatusInternalServerError, "error.internal")
}

func (v *View) CSRFFailure(c *gin.Context) {
	v.ErrorPage(c, http.StatusForbidden, "error.csrf")
}

// HandleError renders the page matching err's AppError type.
func (v *View) HandleError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.IsForbiddenError(err):
		v.Forbidden(c)
	case errors.IsNotFoundError(err):
		v.NotFound(c)
	case errors.IsValidationError(err):
		v.ErrorPage(c, http.StatusBadRequest, "error.bad_request")
	case errors.IsUnauthorizedError(err):
		v.Redirect(c, "/login", utils.FlashInfo, "login.required")
	default:
		if !errors.IsAppError(err) {
			v.logger.Errorw("unhandled handler error", "path", c.Request.URL.Path, "error", err)
		}
		v.InternalError(c)
	}
}
