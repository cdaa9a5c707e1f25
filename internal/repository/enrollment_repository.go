package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/eladkar/semester-planner-api/internal/models"
)

// EnrollmentRepository reads enrollment-eligibility data: which groups a
// section is registrable under and which degrees a course is offered to.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// GroupsBySections returns the enrollment-group rows for the sections.
func (r *EnrollmentRepository) GroupsBySections(ctx context.Context, sectionIDs []int64) ([]models.EnrollmentGroup, error) {
	const query = `SELECT section_id, group_id FROM enrollment_groups
		WHERE section_id = ANY($1) ORDER BY section_id, group_id`
	var groups []models.EnrollmentGroup
	if err := r.db.SelectContext(ctx, &groups, query, pq.Array(sectionIDs)); err != nil {
		return nil, err
	}
	return groups, nil
}

// DegreesByParents returns the degree offerings of the parent courses.
func (r *EnrollmentRepository) DegreesByParents(ctx context.Context, parents []string) ([]models.CourseDegree, error) {
	const query = `SELECT parent_course_number, degree FROM course_degrees
		WHERE parent_course_number = ANY($1) ORDER BY parent_course_number, degree`
	var degrees []models.CourseDegree
	if err := r.db.SelectContext(ctx, &degrees, query, pq.Array(parents)); err != nil {
		return nil, err
	}
	return degrees, nil
}
