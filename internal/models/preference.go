package models

import "time"

// Preference roles, matching the split the solver makes between
// lecture-type and exercise-type sections.
const (
	PreferenceRoleLecture  = "lecture"
	PreferenceRoleExercise = "exercise"
)

// InstructorPreference is one favorite-instructor row: a user prefers the
// named instructor for one role of one course.
type InstructorPreference struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	CourseNumber string    `db:"course_number" json:"course_number"`
	Role         string    `db:"role" json:"role"`
	Instructor   string    `db:"instructor" json:"instructor"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
