package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockdesk/internal/application/user/usecases"
	"stockdesk/internal/interfaces/http/handlers/common"
	"stockdesk/internal/interfaces/http/middleware"
	"stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/logger"
	"stockdesk/internal/shared/utils"
)

type AuthHandler struct {
	loginUseCase  usecases.LoginExecutor
	logoutUseCase usecases.LogoutExecutor
	view          *common.View
	logger        logger.Interface
}

func NewAuthHandler(
	loginUC usecases.LoginExecutor,
	logoutUC usecases.LogoutExecutor,
	view *common.View,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		loginUseCase:  loginUC,
		logoutUseCase: logoutUC,
		view:          view,
		logger:        logger,
	}
}

type LoginRequest struct {
	Username string `form:"username" binding:"required,max=64"`
	Password string `form:"password" binding:"required,max=256"`
}

// Root handles GET /
func (h *AuthHandler) Root(c *gin.Context) {
	if middleware.CurrentPrincipal(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin handles GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	h.renderLogin(c, http.StatusOK, "")
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.AddFlash(c, utils.FlashDanger, h.view.T(c, "login.failed"))
		h.renderLogin(c, http.StatusOK, req.Username)
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginCommand{
		Username:  req.Username,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		if errors.IsUnauthorizedError(err) {
			utils.AddFlash(c, utils.FlashDanger, h.view.T(c, "login.failed"))
			h.renderLogin(c, http.StatusOK, req.Username)
			return
		}
		h.view.HandleError(c, err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	utils.SetSessionCookie(c, h.view.Cookies(), result.Token, maxAge)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// RateLimited renders the login form when the client sent too many attempts.
func (h *AuthHandler) RateLimited(c *gin.Context) {
	utils.AddFlash(c, utils.FlashWarning, h.view.T(c, "login.rate_limited"))
	h.renderLogin(c, http.StatusTooManyRequests, c.PostForm("username"))
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if principal := middleware.CurrentPrincipal(c); principal != nil {
		if err := h.logoutUseCase.Execute(c.Request.Context(), usecases.LogoutCommand{SessionID: principal.SessionID}); err != nil {
			h.logger.Warnw("logout failed", "user_id", principal.UserID, "error", err)
		}
	}
	utils.ClearSessionCookie(c, h.view.Cookies())
	h.view.Redirect(c, "/login", utils.FlashSuccess, "logout.done")
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, username string) {
	h.view.Render(c, status, "login.html", gin.H{
		"Title":    h.view.T(c, "login.title"),
		"Username": username,
	})
}
