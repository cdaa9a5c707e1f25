package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/eladkar/semester-planner-api/internal/dto"
	"github.com/eladkar/semester-planner-api/internal/models"
	"github.com/eladkar/semester-planner-api/internal/repository"
	appErrors "github.com/eladkar/semester-planner-api/pkg/errors"
	"github.com/eladkar/semester-planner-api/pkg/jobs"
	"github.com/eladkar/semester-planner-api/pkg/storage"
)

// exportJobStore abstracts export job persistence.
type exportJobStore interface {
	Create(ctx context.Context, job *models.ExportJob) error
	GetByID(ctx context.Context, id string) (*models.ExportJob, error)
	Update(ctx context.Context, id string, params repository.UpdateExportJobParams) error
	ListQueued(ctx context.Context, limit int) ([]models.ExportJob, error)
}

// jobDispatcher abstracts the background queue.
type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

// exportFileStorage abstracts the rendered-file store.
type exportFileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// artifactRenderer is the slice of ExportService the worker needs.
type artifactRenderer interface {
	Export(ctx context.Context, userID string, req dto.ExportScheduleRequest) (*ExportArtifact, error)
}

// ExportJobConfig tunes the background pipeline.
type ExportJobConfig struct {
	// DownloadPath is the route prefix the signed token is appended to.
	DownloadPath string
	// ResultTTL bounds how long rendered files stay on disk.
	ResultTTL time.Duration
	// CleanupInterval controls how often expired files are purged.
	CleanupInterval time.Duration
}

// ExportJobService runs schedule exports asynchronously: a job row is
// persisted, a worker re-composes and renders the schedule, and the
// caller polls until a signed download URL appears.
type ExportJobService struct {
	store    exportJobStore
	queue    jobDispatcher
	files    exportFileStorage
	signer   *storage.SignedURLSigner
	renderer artifactRenderer
	cfg      ExportJobConfig
	validate *validator.Validate
	logger   *zap.Logger
}

// ExportDownload is a resolved download handle for a finished job.
type ExportDownload struct {
	File        *os.File
	FileName    string
	ContentType string
	ExpiresAt   time.Time
}

// NewExportJobService constructs the service. The queue is attached
// afterwards via SetDispatcher because the queue handler is this
// service's Process method.
func NewExportJobService(store exportJobStore, files exportFileStorage, signer *storage.SignedURLSigner, renderer artifactRenderer, cfg ExportJobConfig, validate *validator.Validate, logger *zap.Logger) *ExportJobService {
	if cfg.DownloadPath == "" {
		cfg.DownloadPath = "/api/v1/planner/export/download"
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 72 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Hour
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportJobService{
		store:    store,
		files:    files,
		signer:   signer,
		renderer: renderer,
		cfg:      cfg,
		validate: validate,
		logger:   logger,
	}
}

// SetDispatcher attaches the queue once it exists.
func (s *ExportJobService) SetDispatcher(queue jobDispatcher) {
	s.queue = queue
}

// CreateJob persists a queued job and hands it to the worker pool.
func (s *ExportJobService) CreateJob(ctx context.Context, userID string, req dto.ExportScheduleRequest) (*dto.ExportJobView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode export request")
	}

	job := &models.ExportJob{
		UserID:     userID,
		Format:     req.Format,
		OptionSlug: req.Option,
		Request:    types.JSONText(payload),
		Status:     models.ExportStatusQueued,
	}
	if err := s.store.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "persist export job")
	}

	if err := s.enqueue(job.ID); err != nil {
		s.markFailed(ctx, job.ID, fmt.Sprintf("enqueue: %v", err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "enqueue export job")
	}

	s.logger.Info("export job queued",
		zap.String("job_id", job.ID),
		zap.String("user_id", userID),
		zap.String("format", job.Format))

	return s.view(job), nil
}

// Status returns the job view for its owner. Other callers get a not
// found error so job identifiers do not leak ownership.
func (s *ExportJobService) Status(ctx context.Context, userID, jobID string) (*dto.ExportJobView, error) {
	job, err := s.store.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load export job")
	}
	if job.UserID != userID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return s.view(job), nil
}

// Process is the queue handler. It re-composes the stored request,
// renders the artifact, saves it and stamps a signed download URL onto
// the job row.
func (s *ExportJobService) Process(ctx context.Context, j jobs.Job) error {
	job, err := s.store.GetByID(ctx, j.ID)
	if err != nil {
		return fmt.Errorf("load export job %s: %w", j.ID, err)
	}
	if job.Status == models.ExportStatusFinished {
		return nil
	}

	processing := models.ExportStatusProcessing
	if err := s.store.Update(ctx, job.ID, repository.UpdateExportJobParams{Status: &processing}); err != nil {
		return fmt.Errorf("mark export job processing: %w", err)
	}

	var req dto.ExportScheduleRequest
	if err := json.Unmarshal(job.Request, &req); err != nil {
		s.markFailed(ctx, job.ID, fmt.Sprintf("decode request: %v", err))
		return nil
	}

	artifact, err := s.renderer.Export(ctx, job.UserID, req)
	if err != nil {
		s.markFailed(ctx, job.ID, err.Error())
		return fmt.Errorf("render export %s: %w", job.ID, err)
	}

	relPath := path.Join(job.ID, artifact.FileName)
	if _, err := s.files.Save(relPath, artifact.Data); err != nil {
		s.markFailed(ctx, job.ID, fmt.Sprintf("save artifact: %v", err))
		return fmt.Errorf("save export %s: %w", job.ID, err)
	}

	token, _, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		s.markFailed(ctx, job.ID, fmt.Sprintf("sign download: %v", err))
		return fmt.Errorf("sign export %s: %w", job.ID, err)
	}
	resultURL := fmt.Sprintf("%s?token=%s", s.cfg.DownloadPath, token)

	finished := models.ExportStatusFinished
	now := time.Now().UTC()
	if err := s.store.Update(ctx, job.ID, repository.UpdateExportJobParams{
		Status:     &finished,
		ResultPath: &relPath,
		ResultURL:  &resultURL,
		FinishedAt: &now,
	}); err != nil {
		return fmt.Errorf("mark export job finished: %w", err)
	}

	s.logger.Info("export job finished",
		zap.String("job_id", job.ID),
		zap.String("file", artifact.FileName))
	return nil
}

// ResolveDownload validates a signed token and opens the stored file.
// It is reachable without a session so links can be shared.
func (s *ExportJobService) ResolveDownload(ctx context.Context, token string) (*ExportDownload, error) {
	jobID, relPath, expiresAt, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}

	job, err := s.store.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load export job")
	}
	if job.Status != models.ExportStatusFinished || job.ResultPath == nil || *job.ResultPath != relPath {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not available")
	}

	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export file expired")
	}

	return &ExportDownload{
		File:        file,
		FileName:    path.Base(relPath),
		ContentType: exportContentType(job.Format),
		ExpiresAt:   expiresAt,
	}, nil
}

// RecoverPendingJobs requeues rows left in QUEUED state by a restart.
func (s *ExportJobService) RecoverPendingJobs(ctx context.Context) error {
	pending, err := s.store.ListQueued(ctx, 50)
	if err != nil {
		return err
	}
	for _, job := range pending {
		if err := s.enqueue(job.ID); err != nil {
			s.logger.Warn("requeue export job failed",
				zap.String("job_id", job.ID), zap.Error(err))
		}
	}
	if len(pending) > 0 {
		s.logger.Info("recovered pending export jobs", zap.Int("count", len(pending)))
	}
	return nil
}

// StartCleanup launches a background loop purging expired export files.
func (s *ExportJobService) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.cfg.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := s.files.CleanupOlderThan(s.cfg.ResultTTL)
				if err != nil {
					s.logger.Warn("export cleanup failed", zap.Error(err))
					continue
				}
				if len(removed) > 0 {
					s.logger.Info("export cleanup removed files", zap.Int("count", len(removed)))
				}
			}
		}
	}()
}

func (s *ExportJobService) enqueue(jobID string) error {
	if s.queue == nil {
		return fmt.Errorf("export queue not attached")
	}
	return s.queue.Enqueue(jobs.Job{ID: jobID, Type: "schedule_export"})
}

func (s *ExportJobService) markFailed(ctx context.Context, jobID, message string) {
	failed := models.ExportStatusFailed
	now := time.Now().UTC()
	if err := s.store.Update(ctx, jobID, repository.UpdateExportJobParams{
		Status:       &failed,
		ErrorMessage: &message,
		FinishedAt:   &now,
	}); err != nil {
		s.logger.Error("mark export job failed",
			zap.String("job_id", jobID), zap.Error(err))
	}
}

func (s *ExportJobService) view(job *models.ExportJob) *dto.ExportJobView {
	return &dto.ExportJobView{
		ID:          job.ID,
		Status:      string(job.Status),
		Format:      job.Format,
		Option:      job.OptionSlug,
		DownloadURL: job.ResultURL,
		Error:       job.ErrorMessage,
		CreatedAt:   job.CreatedAt,
		FinishedAt:  job.FinishedAt,
	}
}

func exportContentType(format string) string {
	switch format {
	case "pdf":
		return "application/pdf"
	default:
		return "text/csv"
	}
}
