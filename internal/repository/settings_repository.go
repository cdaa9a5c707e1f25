package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eladkar/semester-planner-api/internal/models"
)

// SettingsRepository persists per-user planner settings.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository constructs the repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetByUser returns stored planner settings for a user.
func (r *SettingsRepository) GetByUser(ctx context.Context, userID string) (*models.PlannerSettings, error) {
	const query = `SELECT id, user_id, allowed_days, require_free_capacity, require_same_actual_section,
		exclude_administrative, enrollment_eligible_only, degree, created_at, updated_at
		FROM planner_settings WHERE user_id = $1`
	var settings models.PlannerSettings
	if err := r.db.GetContext(ctx, &settings, query, userID); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert creates or updates a user's planner settings.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *models.PlannerSettings) error {
	if settings.ID == "" {
		settings.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now
	if len(settings.AllowedDays) == 0 {
		settings.AllowedDays = []byte("[]")
	}

	const query = `INSERT INTO planner_settings (id, user_id, allowed_days, require_free_capacity,
		require_same_actual_section, exclude_administrative, enrollment_eligible_only, degree, created_at, updated_at)
		VALUES (:id, :user_id, :allowed_days, :require_free_capacity,
		:require_same_actual_section, :exclude_administrative, :enrollment_eligible_only, :degree, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE
		SET allowed_days = EXCLUDED.allowed_days,
		    require_free_capacity = EXCLUDED.require_free_capacity,
		    require_same_actual_section = EXCLUDED.require_same_actual_section,
		    exclude_administrative = EXCLUDED.exclude_administrative,
		    enrollment_eligible_only = EXCLUDED.enrollment_eligible_only,
		    degree = EXCLUDED.degree,
		    updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("upsert planner settings: %w", err)
	}
	return nil
}
