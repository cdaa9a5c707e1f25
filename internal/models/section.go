package models

import "time"

// Section is one catalogue row: a concrete offering of a course sub-type
// (lecture, lab, practice, seminar) synced from the academic portal by an
// external loader.
type Section struct {
	ID                 int64     `db:"id" json:"id"`
	CourseNumber       string    `db:"course_number" json:"course_number"`
	ParentCourseNumber string    `db:"parent_course_number" json:"parent_course_number"`
	CourseName         string    `db:"course_name" json:"course_name"`
	Kind               string    `db:"kind" json:"kind"`
	Instructor         string    `db:"instructor" json:"instructor"`
	Location           string    `db:"location" json:"location"`
	CapacityTaken      int       `db:"capacity_taken" json:"capacity_taken"`
	CapacityMax        int       `db:"capacity_max" json:"capacity_max"` // negative means unlimited
	ActualSectionID    string    `db:"actual_section_id" json:"actual_section_id"`
	AttendanceRequired bool      `db:"attendance_required" json:"attendance_required"`
	Notes              string    `db:"notes" json:"notes"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// SectionMeeting is one weekly meeting window of a section. Times are
// minutes since midnight; day of week follows ISO-8601 (Monday = 1).
type SectionMeeting struct {
	ID           int64 `db:"id" json:"id"`
	SectionID    int64 `db:"section_id" json:"section_id"`
	DayOfWeek    int   `db:"day_of_week" json:"day_of_week"`
	StartMinutes int   `db:"start_minutes" json:"start_minutes"`
	EndMinutes   int   `db:"end_minutes" json:"end_minutes"`
}
