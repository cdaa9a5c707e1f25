package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eladkar/semester-planner-api/internal/dto"
	appErrors "github.com/eladkar/semester-planner-api/pkg/errors"
	"github.com/eladkar/semester-planner-api/pkg/response"
)

type prerequisiteService interface {
	BlockedCourses(ctx context.Context, req dto.BlockedCoursesRequest) (*dto.BlockedCoursesResponse, error)
}

// PrerequisiteHandler exposes prerequisite-graph queries.
type PrerequisiteHandler struct {
	service prerequisiteService
}

// NewPrerequisiteHandler constructs a prerequisite handler.
func NewPrerequisiteHandler(svc prerequisiteService) *PrerequisiteHandler {
	return &PrerequisiteHandler{service: svc}
}

// Blocked godoc
// @Summary List blocked courses
// @Description Split candidate courses into blocked and eligible given the completed set
// @Tags Prerequisites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.BlockedCoursesRequest true "Blocked-courses payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /prerequisites/blocked [post]
func (h *PrerequisiteHandler) Blocked(c *gin.Context) {
	var req dto.BlockedCoursesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid blocked-courses payload"))
		return
	}

	res, err := h.service.BlockedCourses(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}
