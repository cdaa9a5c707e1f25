package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eladkar/semester-planner-api/internal/models"
)

func TestSettingsRepositoryGetAndUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	mock.ExpectExec("INSERT INTO planner_settings").
		WithArgs(sqlmock.AnyArg(), "user-1", sqlmock.AnyArg(), true, false, true, false, "cs", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Upsert(context.Background(), &models.PlannerSettings{
		UserID:                "user-1",
		AllowedDays:           types.JSONText(`[1,2,3,4]`),
		RequireFreeCapacity:   true,
		ExcludeAdministrative: true,
		Degree:                "cs",
	})
	require.NoError(t, err)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "allowed_days", "require_free_capacity", "require_same_actual_section",
		"exclude_administrative", "enrollment_eligible_only", "degree", "created_at", "updated_at",
	}).AddRow("set-1", "user-1", `[1,2,3,4]`, true, false, true, false, "cs", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM planner_settings WHERE user_id = $1")).
		WithArgs("user-1").
		WillReturnRows(rows)

	settings, err := repo.GetByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "set-1", settings.ID)
	assert.True(t, settings.RequireFreeCapacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
