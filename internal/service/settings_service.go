package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/eladkar/semester-planner-api/internal/dto"
	"github.com/eladkar/semester-planner-api/internal/models"
	appErrors "github.com/eladkar/semester-planner-api/pkg/errors"
)

// SettingsStore persists planner settings.
type SettingsStore interface {
	GetByUser(ctx context.Context, userID string) (*models.PlannerSettings, error)
	Upsert(ctx context.Context, settings *models.PlannerSettings) error
}

// PreferenceStore persists favorite-instructor rows.
type PreferenceStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.InstructorPreference, error)
	Replace(ctx context.Context, userID string, prefs []models.InstructorPreference) error
}

// ComposeCacheInvalidator drops cached compose results for a user.
type ComposeCacheInvalidator interface {
	InvalidateUser(ctx context.Context, userID string) error
}

// SettingsService manages stored planner settings and favorite
// instructors. Any change drops the user's cached compose results.
type SettingsService struct {
	settings    SettingsStore
	prefs       PreferenceStore
	invalidator ComposeCacheInvalidator
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewSettingsService constructs a settings service.
func NewSettingsService(settings SettingsStore, prefs PreferenceStore, invalidator ComposeCacheInvalidator, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{settings: settings, prefs: prefs, invalidator: invalidator, validate: validate, logger: logger}
}

// Get returns the caller's stored settings, or defaults when none exist.
func (s *SettingsService) Get(ctx context.Context, userID string) (*dto.PlannerSettingsView, error) {
	settings, err := s.settings.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &dto.PlannerSettingsView{AllowedDays: []int{}}, nil
		}
		return nil, fmt.Errorf("load planner settings: %w", err)
	}

	days := []int{}
	if len(settings.AllowedDays) > 0 {
		if err := json.Unmarshal(settings.AllowedDays, &days); err != nil {
			return nil, fmt.Errorf("decode allowed days: %w", err)
		}
	}
	return &dto.PlannerSettingsView{
		AllowedDays:              days,
		RequireFreeCapacity:      settings.RequireFreeCapacity,
		RequireSameActualSection: settings.RequireSameActualSection,
		ExcludeAdministrative:    settings.ExcludeAdministrative,
		EnrollmentEligibleOnly:   settings.EnrollmentEligibleOnly,
		Degree:                   settings.Degree,
	}, nil
}

// Update replaces the caller's stored settings.
func (s *SettingsService) Update(ctx context.Context, userID string, req dto.PlannerSettingsRequest) (*dto.PlannerSettingsView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}

	days := req.AllowedDays
	if days == nil {
		days = []int{}
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("encode allowed days: %w", err)
	}

	now := time.Now().UTC()
	settings := &models.PlannerSettings{
		UserID:                   userID,
		AllowedDays:              types.JSONText(raw),
		RequireFreeCapacity:      req.RequireFreeCapacity,
		RequireSameActualSection: req.RequireSameActualSection,
		ExcludeAdministrative:    req.ExcludeAdministrative,
		EnrollmentEligibleOnly:   req.EnrollmentEligibleOnly,
		Degree:                   req.Degree,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if err := s.settings.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("save planner settings: %w", err)
	}

	s.invalidate(ctx, userID)

	return &dto.PlannerSettingsView{
		AllowedDays:              days,
		RequireFreeCapacity:      req.RequireFreeCapacity,
		RequireSameActualSection: req.RequireSameActualSection,
		ExcludeAdministrative:    req.ExcludeAdministrative,
		EnrollmentEligibleOnly:   req.EnrollmentEligibleOnly,
		Degree:                   req.Degree,
	}, nil
}

// Preferences returns the caller's favorite-instructor entries.
func (s *SettingsService) Preferences(ctx context.Context, userID string) (*dto.PreferencesView, error) {
	rows, err := s.prefs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	items := make([]dto.InstructorPreferenceItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.InstructorPreferenceItem{
			CourseNumber: row.CourseNumber,
			Role:         row.Role,
			Instructor:   row.Instructor,
		})
	}
	return &dto.PreferencesView{Preferences: items}, nil
}

// ReplacePreferences swaps the caller's full preference set.
func (s *SettingsService) ReplacePreferences(ctx context.Context, userID string, req dto.ReplacePreferencesRequest) (*dto.PreferencesView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preferences payload")
	}

	now := time.Now().UTC()
	rows := make([]models.InstructorPreference, 0, len(req.Preferences))
	for _, item := range req.Preferences {
		rows = append(rows, models.InstructorPreference{
			UserID:       userID,
			CourseNumber: item.CourseNumber,
			Role:         item.Role,
			Instructor:   item.Instructor,
			CreatedAt:    now,
		})
	}
	if err := s.prefs.Replace(ctx, userID, rows); err != nil {
		return nil, fmt.Errorf("replace preferences: %w", err)
	}

	s.invalidate(ctx, userID)

	return &dto.PreferencesView{Preferences: append([]dto.InstructorPreferenceItem{}, req.Preferences...)}, nil
}

func (s *SettingsService) invalidate(ctx context.Context, userID string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateUser(ctx, userID); err != nil {
		s.logger.Warn("invalidate compose cache", zap.String("user_id", userID), zap.Error(err))
	}
}
