package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/eladkar/semester-planner-api/internal/models"
)

// PrerequisiteRepository reads the prerequisite edge list.
type PrerequisiteRepository struct {
	db *sqlx.DB
}

// NewPrerequisiteRepository constructs the repository.
func NewPrerequisiteRepository(db *sqlx.DB) *PrerequisiteRepository {
	return &PrerequisiteRepository{db: db}
}

// ListAll returns every prerequisite edge. The closure computation needs
// transitive edges, so it cannot be scoped to the candidate set.
func (r *PrerequisiteRepository) ListAll(ctx context.Context) ([]models.Prerequisite, error) {
	const query = `SELECT course_number, requires_course_number FROM prerequisites
		ORDER BY course_number, requires_course_number`
	var edges []models.Prerequisite
	if err := r.db.SelectContext(ctx, &edges, query); err != nil {
		return nil, err
	}
	return edges, nil
}
