package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eladkar/semester-planner-api/internal/dto"
	"github.com/eladkar/semester-planner-api/internal/middleware"
	"github.com/eladkar/semester-planner-api/internal/service"
	appErrors "github.com/eladkar/semester-planner-api/pkg/errors"
	"github.com/eladkar/semester-planner-api/pkg/response"
)

type exportJobService interface {
	CreateJob(ctx context.Context, userID string, req dto.ExportScheduleRequest) (*dto.ExportJobView, error)
	Status(ctx context.Context, userID, jobID string) (*dto.ExportJobView, error)
	ResolveDownload(ctx context.Context, token string) (*service.ExportDownload, error)
}

// ExportJobHandler exposes the asynchronous export pipeline.
type ExportJobHandler struct {
	jobs exportJobService
}

// NewExportJobHandler constructs the handler.
func NewExportJobHandler(jobs exportJobService) *ExportJobHandler {
	return &ExportJobHandler{jobs: jobs}
}

// Create godoc
// @Summary Queue a schedule export
// @Description Persist an export job and render it in the background
// @Tags Export
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ExportScheduleRequest true "Export payload"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /planner/export/jobs [post]
func (h *ExportJobHandler) Create(c *gin.Context) {
	var req dto.ExportScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}

	view, err := h.jobs.CreateJob(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, view, nil)
}

// Status godoc
// @Summary Poll an export job
// @Tags Export
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /planner/export/jobs/{id} [get]
func (h *ExportJobHandler) Status(c *gin.Context) {
	view, err := h.jobs.Status(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Download godoc
// @Summary Download a finished export
// @Description Streams the rendered file referenced by a signed token
// @Tags Export
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /planner/export/download [get]
func (h *ExportJobHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}

	download, err := h.jobs.ResolveDownload(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close() //nolint:errcheck

	info, err := download.File.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stat export file"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+download.FileName+`"`)
	c.DataFromReader(http.StatusOK, info.Size(), download.ContentType, download.File, nil)
}
