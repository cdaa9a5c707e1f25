package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// PlannerSettings stores a user's persistent planner configuration. The
// AllowedDays column is a JSON array of ISO weekday indices; empty means
// no day restriction.
type PlannerSettings struct {
	ID                       string         `db:"id" json:"id"`
	UserID                   string         `db:"user_id" json:"user_id"`
	AllowedDays              types.JSONText `db:"allowed_days" json:"allowed_days"`
	RequireFreeCapacity      bool           `db:"require_free_capacity" json:"require_free_capacity"`
	RequireSameActualSection bool           `db:"require_same_actual_section" json:"require_same_actual_section"`
	ExcludeAdministrative    bool           `db:"exclude_administrative" json:"exclude_administrative"`
	EnrollmentEligibleOnly   bool           `db:"enrollment_eligible_only" json:"enrollment_eligible_only"`
	Degree                   string         `db:"degree" json:"degree"`
	CreatedAt                time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt                time.Time      `db:"updated_at" json:"updated_at"`
}
