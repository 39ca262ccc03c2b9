package handlers

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"

	"stockdesk/internal/infrastructure/storage"
	"stockdesk/internal/interfaces/http/handlers/common"
	"stockdesk/internal/shared/logger"
)

// FileLocator resolves a stored attachment name to a path on disk.
type FileLocator interface {
	Path(name string) (string, error)
}

type UploadHandler struct {
	files  FileLocator
	view   *common.View
	logger logger.Interface
}

func NewUploadHandler(files FileLocator, view *common.View, logger logger.Interface) *UploadHandler {
	return &UploadHandler{
		files:  files,
		view:   view,
		logger: logger,
	}
}

// Serve handles GET /uploads/:filename
func (h *UploadHandler) Serve(c *gin.Context) {
	name := c.Param("filename")
	path, err := h.files.Path(name)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) || stderrors.Is(err, storage.ErrInvalidName) {
			h.view.NotFound(c)
			return
		}
		h.logger.Errorw("failed to resolve upload", "file", name, "error", err)
		h.view.InternalError(c)
		return
	}

	c.Header("X-Content-Type-Options", "nosniff")
	c.File(path)
}
