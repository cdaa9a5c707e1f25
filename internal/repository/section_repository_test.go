package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSectionRepositoryListByParentCourseNumbers(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "course_number", "parent_course_number", "course_name", "kind", "instructor", "location",
		"capacity_taken", "capacity_max", "actual_section_id", "attendance_required", "notes", "created_at", "updated_at",
	}).
		AddRow(1, "104031.01", "104031", "Calculus 1", "lecture", "Mike", "Ulman 305", 13, 30, "11", true, "", now, now).
		AddRow(2, "104031.11", "104031", "Calculus 1", "practice", "Anna", "Ulman 201", 10, 10, "11", true, "", now, now)

	mock.ExpectQuery("SELECT (.+) FROM sections WHERE parent_course_number = ANY").
		WillReturnRows(rows)

	sections, err := repo.ListByParentCourseNumbers(context.Background(), []string{"104031"})
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "Calculus 1", sections[0].CourseName)
	assert.Equal(t, "practice", sections[1].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionRepositoryListMeetings(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "section_id", "day_of_week", "start_minutes", "end_minutes"}).
		AddRow(10, 1, 7, 600, 660).
		AddRow(11, 1, 2, 720, 810)

	mock.ExpectQuery("SELECT (.+) FROM section_meetings WHERE section_id = ANY").
		WillReturnRows(rows)

	meetings, err := repo.ListMeetings(context.Background(), []int64{1})
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, int64(1), meetings[0].SectionID)
	assert.Equal(t, 600, meetings[0].StartMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionRepositoryFindByIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "course_number", "parent_course_number", "course_name", "kind", "instructor", "location",
		"capacity_taken", "capacity_max", "actual_section_id", "attendance_required", "notes", "created_at", "updated_at",
	}).
		AddRow(5, "236501.01", "236501", "Algorithms", "lecture", "Dana", "Taub 1", 40, -1, "21", true, "", now, now)

	mock.ExpectQuery("SELECT (.+) FROM sections WHERE id = ANY").
		WillReturnRows(rows)

	sections, err := repo.FindByIDs(context.Background(), []int64{5})
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, -1, sections[0].CapacityMax, "negative max means unlimited")
	assert.NoError(t, mock.ExpectationsWereMet())
}
