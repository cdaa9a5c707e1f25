package dto

// BlockedCoursesRequest asks which candidate courses are blocked by
// unmet prerequisites given the completed set.
type BlockedCoursesRequest struct {
	CompletedCourses []string `json:"completedCourses" validate:"omitempty,dive,required"`
	CandidateCourses []string `json:"candidateCourses" validate:"required,min=1,dive,required"`
}

// BlockedCourse names one blocked candidate and the full unmet chain,
// direct prerequisites first.
type BlockedCourse struct {
	CourseNumber         string   `json:"courseNumber"`
	MissingPrerequisites []string `json:"missingPrerequisites"`
}

// BlockedCoursesResponse splits candidates into blocked and eligible.
type BlockedCoursesResponse struct {
	Blocked  []BlockedCourse `json:"blocked"`
	Eligible []string        `json:"eligible"`
}
