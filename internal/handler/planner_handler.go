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

type plannerService interface {
	Compose(ctx context.Context, userID string, req dto.ComposeScheduleRequest) (*dto.ComposeScheduleResponse, error)
	CheckRegistrable(ctx context.Context, userID string, req dto.CheckSectionsRequest) (*dto.CheckSectionsResponse, error)
}

type exportService interface {
	Export(ctx context.Context, userID string, req dto.ExportScheduleRequest) (*service.ExportArtifact, error)
}

type settingsService interface {
	Get(ctx context.Context, userID string) (*dto.PlannerSettingsView, error)
	Update(ctx context.Context, userID string, req dto.PlannerSettingsRequest) (*dto.PlannerSettingsView, error)
	Preferences(ctx context.Context, userID string) (*dto.PreferencesView, error)
	ReplacePreferences(ctx context.Context, userID string, req dto.ReplacePreferencesRequest) (*dto.PreferencesView, error)
}

// PlannerHandler exposes the schedule-composing endpoints.
type PlannerHandler struct {
	planner  plannerService
	export   exportService
	settings settingsService
}

// NewPlannerHandler constructs the planner handler. A nil export service
// disables the export endpoint.
func NewPlannerHandler(planner plannerService, export exportService, settings settingsService) *PlannerHandler {
	return &PlannerHandler{planner: planner, export: export, settings: settings}
}

// Compose godoc
// @Summary Compose schedules
// @Description Build every internally consistent schedule for the selected courses
// @Tags Planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ComposeScheduleRequest true "Compose payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /planner/compose [post]
func (h *PlannerHandler) Compose(c *gin.Context) {
	var req dto.ComposeScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid compose payload"))
		return
	}

	res, err := h.planner.Compose(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, res.Cached)
	response.JSON(c, http.StatusOK, res, nil, middleware.ExtractMeta(c))
}

// Check godoc
// @Summary Check section registrability
// @Description Report whether the given sections can all be attended together
// @Tags Planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CheckSectionsRequest true "Check payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /planner/check [post]
func (h *PlannerHandler) Check(c *gin.Context) {
	var req dto.CheckSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid check payload"))
		return
	}

	res, err := h.planner.CheckRegistrable(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// Export godoc
// @Summary Export a schedule option
// @Description Render one composed schedule option as CSV or PDF
// @Tags Planner
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param payload body dto.ExportScheduleRequest true "Export payload"
// @Success 200 {file} byte
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /planner/export [post]
func (h *PlannerHandler) Export(c *gin.Context) {
	if h.export == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrPreconditionFailed, "export is disabled"))
		return
	}

	var req dto.ExportScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}

	artifact, err := h.export.Export(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+artifact.FileName+`"`)
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

// GetSettings godoc
// @Summary Get planner settings
// @Tags Planner
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /planner/settings [get]
func (h *PlannerHandler) GetSettings(c *gin.Context) {
	res, err := h.settings.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// UpdateSettings godoc
// @Summary Replace planner settings
// @Tags Planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.PlannerSettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /planner/settings [put]
func (h *PlannerHandler) UpdateSettings(c *gin.Context) {
	var req dto.PlannerSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid settings payload"))
		return
	}

	res, err := h.settings.Update(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// GetPreferences godoc
// @Summary List favorite instructors
// @Tags Planner
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /planner/preferences [get]
func (h *PlannerHandler) GetPreferences(c *gin.Context) {
	res, err := h.settings.Preferences(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// ReplacePreferences godoc
// @Summary Replace favorite instructors
// @Tags Planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ReplacePreferencesRequest true "Preferences payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /planner/preferences [put]
func (h *PlannerHandler) ReplacePreferences(c *gin.Context) {
	var req dto.ReplacePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid preferences payload"))
		return
	}

	res, err := h.settings.ReplacePreferences(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
