package models

// EnrollmentGroup links a section to one enrollment group it may be
// registered under. A section can belong to several groups.
type EnrollmentGroup struct {
	SectionID int64 `db:"section_id" json:"section_id"`
	GroupID   int64 `db:"group_id" json:"group_id"`
}

// CourseDegree records that a parent course is offered under a degree.
// Courses offered to several degrees other than the caller's active one
// are exempt from enrollment-eligibility checks.
type CourseDegree struct {
	ParentCourseNumber string `db:"parent_course_number" json:"parent_course_number"`
	Degree             string `db:"degree" json:"degree"`
}

// Prerequisite is one directed edge of the prerequisite graph: taking
// CourseNumber requires RequiresCourseNumber first.
type Prerequisite struct {
	CourseNumber         string `db:"course_number" json:"course_number"`
	RequiresCourseNumber string `db:"requires_course_number" json:"requires_course_number"`
}
