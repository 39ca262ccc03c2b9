// Package ticket serves the dashboard and ticket pages.
package ticket

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stockdesk/internal/application/ticket/dto"
	"stockdesk/internal/application/ticket/usecases"
	"stockdesk/internal/domain/permission"
	vo "stockdesk/internal/domain/ticket/valueobjects"
	"stockdesk/internal/infrastructure/storage"
	"stockdesk/internal/interfaces/http/handlers/common"
	"stockdesk/internal/interfaces/http/middleware"
	"stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/logger"
	"stockdesk/internal/shared/utils"
)

// UploadStore keeps attachments sent with comments and status changes.
type UploadStore interface {
	Save(originalName string, r io.Reader) (string, error)
	Remove(name string) error
}

type Handler struct {
	createTicketUC usecases.CreateTicketExecutor
	changeStatusUC usecases.ChangeStatusExecutor
	addCommentUC   usecases.AddCommentExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	getTicketUC    usecases.GetTicketExecutor
	uploads        UploadStore
	view           *common.View
	logger         logger.Interface
}

func NewHandler(
	createTicketUC usecases.CreateTicketExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	addCommentUC usecases.AddCommentExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getTicketUC usecases.GetTicketExecutor,
	uploads UploadStore,
	view *common.View,
	logger logger.Interface,
) *Handler {
	return &Handler{
		createTicketUC: createTicketUC,
		changeStatusUC: changeStatusUC,
		addCommentUC:   addCommentUC,
		listTicketsUC:  listTicketsUC,
		getTicketUC:    getTicketUC,
		uploads:        uploads,
		view:           view,
		logger:         logger,
	}
}

// Dashboard handles GET /dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	filter := c.Query("status")
	if filter != "" && !vo.TicketStatus(filter).IsValid() {
		filter = ""
	}

	tickets, err := h.listTicketsUC.Execute(c.Request.Context(), usecases.ListTicketsQuery{
		Actor:  actor,
		Status: filter,
	})
	if err != nil {
		h.view.HandleError(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "dashboard.html", gin.H{
		"Title":        h.view.T(c, "dashboard.title"),
		"Tickets":      tickets,
		"Statuses":     vo.AllStatuses,
		"StatusFilter": filter,
	})
}

// NewTicketForm handles GET /tickets/new
func (h *Handler) NewTicketForm(c *gin.Context) {
	h.renderNewTicket(c, http.StatusOK, CreateTicketRequest{}, map[string]string{})
}

// CreateTicket handles POST /tickets/new
func (h *Handler) CreateTicket(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBind(&req); err != nil {
		fields := utils.FieldErrors(err)
		if fields == nil {
			fields = map[string]string{}
			utils.AddFlash(c, utils.FlashDanger, h.view.T(c, "error.bad_request"))
		}
		h.renderNewTicket(c, http.StatusBadRequest, req, fields)
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), usecases.CreateTicketCommand{
		Actor:          actor,
		ProjectName:    req.ProjectName,
		ApplicantName:  req.ApplicantName,
		ApplicantPhone: req.ApplicantPhone,
		Description:    req.Description,
	})
	if err != nil {
		switch {
		case errors.IsForbiddenError(err):
			h.view.Redirect(c, "/dashboard", utils.FlashDanger, "access.create_denied")
		case errors.IsValidationError(err):
			utils.AddFlash(c, utils.FlashDanger, h.view.T(c, "form.invalid"))
			h.renderNewTicket(c, http.StatusBadRequest, req, map[string]string{})
		default:
			h.view.HandleError(c, err)
		}
		return
	}

	h.view.Redirect(c, ticketPath(result.TicketID), utils.FlashSuccess, "ticket.created")
}

// Detail handles GET /tickets/:id
func (h *Handler) Detail(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		h.view.Redirect(c, "/dashboard", utils.FlashWarning, "ticket.not_found")
		return
	}

	detail, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		Actor:    actor,
		TicketID: id,
	})
	if err != nil {
		if errors.IsNotFoundError(err) {
			h.view.Redirect(c, "/dashboard", utils.FlashWarning, "ticket.not_found")
			return
		}
		h.view.HandleError(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "ticket_detail.html", gin.H{
		"Title":    fmt.Sprintf("%s%d", h.view.T(c, "ticket.id"), detail.Ticket.ID),
		"Detail":   detail,
		"Statuses": vo.AllStatuses,
	})
}

// PostAction handles POST /tickets/:id. The action field selects a comment or a status change.
func (h *Handler) PostAction(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		h.view.Redirect(c, "/dashboard", utils.FlashWarning, "ticket.not_found")
		return
	}

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !stderrors.Is(err, http.ErrNotMultipart) {
		h.uploadFailed(c, id, err)
		return
	}

	switch c.PostForm("action") {
	case actionComment:
		h.addComment(c, actor, id)
	case actionStatus:
		h.changeStatus(c, actor, id)
	default:
		h.view.ErrorPage(c, http.StatusBadRequest, "error.bad_request")
	}
}

func (h *Handler) addComment(c *gin.Context, actor dto.Actor, ticketID uint) {
	var req AddCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.view.Redirect(c, ticketPath(ticketID), utils.FlashDanger, "form.max")
		return
	}

	photo, err := h.saveUpload(c, commentPhotoField)
	if err != nil {
		h.uploadFailed(c, ticketID, err)
		return
	}

	if strings.TrimSpace(req.Text) == "" && photo == "" {
		h.view.Redirect(c, ticketPath(ticketID), utils.FlashWarning, "comment.empty_rejected")
		return
	}

	_, err = h.addCommentUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		Actor:     actor,
		TicketID:  ticketID,
		Text:      req.Text,
		PhotoPath: photo,
	})
	if err != nil {
		h.actionFailed(c, ticketID, err)
		return
	}

	h.view.Redirect(c, ticketPath(ticketID), utils.FlashSuccess, "comment.added")
}

func (h *Handler) changeStatus(c *gin.Context, actor dto.Actor, ticketID uint) {
	// Checked before touching the upload so a denied request leaves nothing on disk.
	if !permission.Allows(actor.Role, permission.ChangeStatus) {
		h.view.Redirect(c, ticketPath(ticketID), utils.FlashDanger, "access.denied")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		h.view.Redirect(c, ticketPath(ticketID), utils.FlashDanger, "error.bad_request")
		return
	}

	var proof string
	if req.Status == vo.StatusPickedUp.String() {
		var err error
		proof, err = h.saveUpload(c, pickupProofField)
		if err != nil {
			h.uploadFailed(c, ticketID, err)
			return
		}
	}

	_, err := h.changeStatusUC.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		Actor:           actor,
		TicketID:        ticketID,
		Status:          req.Status,
		PickupRecipient: req.PickupRecipient,
		PickupProofPath: proof,
	})
	if err != nil {
		h.actionFailed(c, ticketID, err)
		return
	}

	h.view.Redirect(c, ticketPath(ticketID), utils.FlashSuccess, "ticket.status_updated")
}

func (h *Handler) actionFailed(c *gin.Context, ticketID uint, err error) {
	switch {
	case errors.IsNotFoundError(err):
		h.view.Redirect(c, "/dashboard", utils.FlashWarning, "ticket.not_found")
	case errors.IsForbiddenError(err):
		h.view.Redirect(c, ticketPath(ticketID), utils.FlashDanger, "access.denied")
	case errors.IsValidationError(err):
		h.view.Redirect(c, ticketPath(ticketID), utils.FlashDanger, "error.bad_request")
	default:
		h.view.HandleError(c, err)
	}
}

func (h *Handler) uploadFailed(c *gin.Context, ticketID uint, err error) {
	var maxBytesErr *http.MaxBytesError
	if stderrors.Is(err, storage.ErrTooLarge) || stderrors.As(err, &maxBytesErr) {
		h.view.Redirect(c, ticketPath(ticketID), utils.FlashDanger, "upload.too_large")
		return
	}
	h.logger.Errorw("failed to store upload", "ticket_id", ticketID, "error", err)
	h.view.Redirect(c, ticketPath(ticketID), utils.FlashDanger, "error.internal")
}

// saveUpload stores the file sent as field. A missing or empty file yields "".
func (h *Handler) saveUpload(c *gin.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if stderrors.Is(err, http.ErrMissingFile) || stderrors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}
	if fh.Size == 0 {
		return "", nil
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return h.uploads.Save(fh.Filename, f)
}

func (h *Handler) renderNewTicket(c *gin.Context, status int, form CreateTicketRequest, fieldErrors map[string]string) {
	h.view.Render(c, status, "ticket_new.html", gin.H{
		"Title":  h.view.T(c, "nav.new_ticket"),
		"Form":   form,
		"Errors": fieldErrors,
	})
}

func (h *Handler) actor(c *gin.Context) (dto.Actor, bool) {
	principal := middleware.CurrentPrincipal(c)
	if principal == nil {
		h.view.Redirect(c, "/login", utils.FlashInfo, "login.required")
		return dto.Actor{}, false
	}
	return dto.Actor{UserID: principal.UserID, Role: principal.Role}, true
}

func ticketPath(id uint) string {
	return fmt.Sprintf("/tickets/%d", id)
}
