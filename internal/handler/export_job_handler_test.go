package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eladkar/semester-planner-api/internal/dto"
	"github.com/eladkar/semester-planner-api/internal/middleware"
	"github.com/eladkar/semester-planner-api/internal/models"
	"github.com/eladkar/semester-planner-api/internal/service"
	appErrors "github.com/eladkar/semester-planner-api/pkg/errors"
)

type exportJobServiceMock struct {
	view       *dto.ExportJobView
	download   *service.ExportDownload
	err        error
	lastUserID string
	lastJobID  string
	lastToken  string
}

func (m *exportJobServiceMock) CreateJob(ctx context.Context, userID string, req dto.ExportScheduleRequest) (*dto.ExportJobView, error) {
	m.lastUserID = userID
	return m.view, m.err
}

func (m *exportJobServiceMock) Status(ctx context.Context, userID, jobID string) (*dto.ExportJobView, error) {
	m.lastUserID = userID
	m.lastJobID = jobID
	return m.view, m.err
}

func (m *exportJobServiceMock) ResolveDownload(ctx context.Context, token string) (*service.ExportDownload, error) {
	m.lastToken = token
	return m.download, m.err
}

func TestExportJobHandlerCreateAccepted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &exportJobServiceMock{view: &dto.ExportJobView{ID: "job-1", Status: "QUEUED", Format: "csv"}}
	h := NewExportJobHandler(mockSvc)

	w := httptest.NewRecorder()
	c := postContext(t, w, "/planner/export/jobs", dto.ExportScheduleRequest{
		ComposeScheduleRequest: dto.ComposeScheduleRequest{CourseNumbers: []string{"CS101"}},
		Option:                 "option_1",
		Format:                 "csv",
	})

	h.Create(c)

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "user-1", mockSvc.lastUserID)
	assert.Contains(t, w.Body.String(), `"job-1"`)
	assert.Contains(t, w.Body.String(), "QUEUED")
}

func TestExportJobHandlerStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	url := "/api/v1/planner/export/download?token=abc"
	mockSvc := &exportJobServiceMock{view: &dto.ExportJobView{ID: "job-1", Status: "FINISHED", DownloadURL: &url}}
	h := NewExportJobHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/planner/export/jobs/job-1", nil)
	require.NoError(t, err)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1", Role: models.RoleStudent})

	h.Status(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "job-1", mockSvc.lastJobID)
	assert.Contains(t, w.Body.String(), "download?token=abc")
}

func TestExportJobHandlerStatusNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &exportJobServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "export job not found")}
	h := NewExportJobHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/planner/export/jobs/missing", nil)
	require.NoError(t, err)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1", Role: models.RoleStudent})

	h.Status(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportJobHandlerDownloadStreamsFile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "option_1.csv")
	require.NoError(t, os.WriteFile(path, []byte("Day,Start\nMonday,09:00\n"), 0o644))
	file, err := os.Open(path)
	require.NoError(t, err)

	mockSvc := &exportJobServiceMock{download: &service.ExportDownload{
		File:        file,
		FileName:    "option_1.csv",
		ContentType: "text/csv",
		ExpiresAt:   time.Now().Add(time.Hour),
	}}
	h := NewExportJobHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/planner/export/download?token=tok-1", nil)
	require.NoError(t, err)
	c.Request = req

	h.Download(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-1", mockSvc.lastToken)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "option_1.csv")
	assert.Contains(t, w.Body.String(), "Monday")
}

func TestExportJobHandlerDownloadMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportJobHandler(&exportJobServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/planner/export/download", nil)
	require.NoError(t, err)
	c.Request = req

	h.Download(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
