package dto

// PersonalBlockRequest is a fixed personal commitment the planner must
// schedule around. Times are "HH:MM" wall-clock strings.
type PersonalBlockRequest struct {
	Name  string `json:"name" validate:"required"`
	Day   int    `json:"day" validate:"required,min=1,max=7"`
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// FilterOverrides optionally override the caller's stored planner
// settings for a single request. Nil fields keep the stored value.
type FilterOverrides struct {
	AllowedDays              []int   `json:"allowedDays" validate:"omitempty,dive,min=1,max=7"`
	RequireFreeCapacity      *bool   `json:"requireFreeCapacity"`
	RequireSameActualSection *bool   `json:"requireSameActualSection"`
	ExcludeAdministrative    *bool   `json:"excludeAdministrative"`
	EnrollmentEligibleOnly   *bool   `json:"enrollmentEligibleOnly"`
	Degree                   *string `json:"degree"`
}

// ComposeScheduleRequest asks the planner for every internally consistent
// schedule over the selected courses and personal blocks.
type ComposeScheduleRequest struct {
	CourseNumbers  []string               `json:"courseNumbers" validate:"required,min=1,max=16,dive,required"`
	PersonalBlocks []PersonalBlockRequest `json:"personalBlocks" validate:"omitempty,max=16,dive"`
	Overrides      *FilterOverrides       `json:"overrides"`
}

// MeetingView is one rendered meeting window.
type MeetingView struct {
	Day   int    `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ActivityView is one activity inside a composed schedule.
type ActivityView struct {
	Name            string        `json:"name"`
	Kind            string        `json:"kind"`
	Instructor      string        `json:"instructor,omitempty"`
	CourseNumber    string        `json:"courseNumber,omitempty"`
	Location        string        `json:"location,omitempty"`
	ActualSectionID string        `json:"actualSectionId,omitempty"`
	Meetings        []MeetingView `json:"meetings"`
}

// ScheduleView is one fully consistent schedule option.
type ScheduleView struct {
	Name       string         `json:"name"`
	Slug       string         `json:"slug"`
	Activities []ActivityView `json:"activities"`
}

// CollisionView names the two courses whose sections collided most
// recently during a failed search. Best-effort diagnostics only.
type CollisionView struct {
	CourseA string `json:"courseA"`
	CourseB string `json:"courseB"`
}

// ComposeScheduleResponse carries every schedule found plus the
// relaxation tier that produced them.
type ComposeScheduleResponse struct {
	Status        string         `json:"status"`
	Schedules     []ScheduleView `json:"schedules"`
	LastCollision *CollisionView `json:"lastCollision,omitempty"`
	Cached        bool           `json:"cached"`
	ElapsedMs     int64          `json:"elapsedMs"`
}

// CheckSectionsRequest asks whether a concrete set of sections is
// simultaneously registrable, ignoring taste filters.
type CheckSectionsRequest struct {
	SectionIDs []int64 `json:"sectionIds" validate:"required,min=1,max=64"`
}

// CheckSectionsResponse reports minimal-consistency feasibility.
type CheckSectionsResponse struct {
	Registrable  bool `json:"registrable"`
	Combinations int  `json:"combinations"`
}

// ExportScheduleRequest re-composes and renders a single schedule option
// as a downloadable artifact.
type ExportScheduleRequest struct {
	ComposeScheduleRequest
	Option string `json:"option" validate:"required"`
	Format string `json:"format" validate:"required,oneof=csv pdf"`
}
