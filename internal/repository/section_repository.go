package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/eladkar/semester-planner-api/internal/models"
)

// SectionRepository reads the synced course catalogue.
type SectionRepository struct {
	db *sqlx.DB
}

// NewSectionRepository constructs the repository.
func NewSectionRepository(db *sqlx.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// ListByParentCourseNumbers returns every section of the given courses.
// The fixed ordering keeps solver input, and therefore option slugs,
// reproducible across runs.
func (r *SectionRepository) ListByParentCourseNumbers(ctx context.Context, parents []string) ([]models.Section, error) {
	const query = `SELECT id, course_number, parent_course_number, course_name, kind, instructor, location,
		capacity_taken, capacity_max, actual_section_id, attendance_required, notes, created_at, updated_at
		FROM sections WHERE parent_course_number = ANY($1)
		ORDER BY parent_course_number, course_number, id`
	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, pq.Array(parents)); err != nil {
		return nil, err
	}
	return sections, nil
}

// FindByIDs returns the sections with the given ids, in id order.
func (r *SectionRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Section, error) {
	const query = `SELECT id, course_number, parent_course_number, course_name, kind, instructor, location,
		capacity_taken, capacity_max, actual_section_id, attendance_required, notes, created_at, updated_at
		FROM sections WHERE id = ANY($1) ORDER BY id`
	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return sections, nil
}

// ListMeetings returns the meeting windows of the given sections.
func (r *SectionRepository) ListMeetings(ctx context.Context, sectionIDs []int64) ([]models.SectionMeeting, error) {
	const query = `SELECT id, section_id, day_of_week, start_minutes, end_minutes
		FROM section_meetings WHERE section_id = ANY($1)
		ORDER BY section_id, day_of_week, start_minutes`
	var meetings []models.SectionMeeting
	if err := r.db.SelectContext(ctx, &meetings, query, pq.Array(sectionIDs)); err != nil {
		return nil, err
	}
	return meetings, nil
}
