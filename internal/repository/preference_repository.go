package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eladkar/semester-planner-api/internal/models"
)

// PreferenceRepository persists favorite-instructor preferences.
type PreferenceRepository struct {
	db *sqlx.DB
}

// NewPreferenceRepository constructs the repository.
func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// ListByUser returns every preference row of a user.
func (r *PreferenceRepository) ListByUser(ctx context.Context, userID string) ([]models.InstructorPreference, error) {
	const query = `SELECT id, user_id, course_number, role, instructor, created_at
		FROM instructor_preferences WHERE user_id = $1
		ORDER BY course_number, role, instructor`
	var prefs []models.InstructorPreference
	if err := r.db.SelectContext(ctx, &prefs, query, userID); err != nil {
		return nil, err
	}
	return prefs, nil
}

// Replace swaps a user's full preference set atomically.
func (r *PreferenceRepository) Replace(ctx context.Context, userID string, prefs []models.InstructorPreference) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin preference replace: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM instructor_preferences WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear preferences: %w", err)
	}

	const insert = `INSERT INTO instructor_preferences (id, user_id, course_number, role, instructor, created_at)
		VALUES (:id, :user_id, :course_number, :role, :instructor, :created_at)`
	now := time.Now().UTC()
	for i := range prefs {
		pref := prefs[i]
		pref.UserID = userID
		if pref.ID == "" {
			pref.ID = uuid.NewString()
		}
		if pref.CreatedAt.IsZero() {
			pref.CreatedAt = now
		}
		if _, err = tx.NamedExecContext(ctx, insert, pref); err != nil {
			return fmt.Errorf("insert preference: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit preference replace: %w", err)
	}
	return nil
}
