package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockdesk/internal/application/user/usecases"
	"stockdesk/internal/interfaces/http/handlers/common"
	"stockdesk/internal/interfaces/http/middleware"
)

type UserHandler struct {
	listUsersUseCase usecases.ListUsersExecutor
	view             *common.View
}

func NewUserHandler(listUsersUC usecases.ListUsersExecutor, view *common.View) *UserHandler {
	return &UserHandler{
		listUsersUseCase: listUsersUC,
		view:             view,
	}
}

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	principal := middleware.CurrentPrincipal(c)
	if principal == nil {
		h.view.Forbidden(c)
		return
	}

	users, err := h.listUsersUseCase.Execute(c.Request.Context(), usecases.ListUsersQuery{Role: principal.Role})
	if err != nil {
		h.view.HandleError(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "users.html", gin.H{
		"Title": h.view.T(c, "users.title"),
		"Users": users,
	})
}
