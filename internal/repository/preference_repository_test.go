package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eladkar/semester-planner-api/internal/models"
)

func TestPreferenceRepositoryListByUser(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPreferenceRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "course_number", "role", "instructor", "created_at"}).
		AddRow("pref-1", "user-1", "104031", "lecture", "Mike", now).
		AddRow("pref-2", "user-1", "104031", "exercise", "Anna", now)

	mock.ExpectQuery("SELECT (.+) FROM instructor_preferences WHERE user_id").
		WithArgs("user-1").
		WillReturnRows(rows)

	prefs, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, models.PreferenceRoleLecture, prefs[0].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceRepositoryReplace(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPreferenceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM instructor_preferences WHERE user_id").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO instructor_preferences").
		WithArgs(sqlmock.AnyArg(), "user-1", "104031", "lecture", "Mike", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Replace(context.Background(), "user-1", []models.InstructorPreference{
		{CourseNumber: "104031", Role: models.PreferenceRoleLecture, Instructor: "Mike"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
