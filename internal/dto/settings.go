package dto

// PlannerSettingsRequest replaces the caller's stored planner settings.
type PlannerSettingsRequest struct {
	AllowedDays              []int  `json:"allowedDays" validate:"omitempty,dive,min=1,max=7"`
	RequireFreeCapacity      bool   `json:"requireFreeCapacity"`
	RequireSameActualSection bool   `json:"requireSameActualSection"`
	ExcludeAdministrative    bool   `json:"excludeAdministrative"`
	EnrollmentEligibleOnly   bool   `json:"enrollmentEligibleOnly"`
	Degree                   string `json:"degree"`
}

// PlannerSettingsView renders stored settings back to the caller.
type PlannerSettingsView struct {
	AllowedDays              []int  `json:"allowedDays"`
	RequireFreeCapacity      bool   `json:"requireFreeCapacity"`
	RequireSameActualSection bool   `json:"requireSameActualSection"`
	ExcludeAdministrative    bool   `json:"excludeAdministrative"`
	EnrollmentEligibleOnly   bool   `json:"enrollmentEligibleOnly"`
	Degree                   string `json:"degree"`
}

// InstructorPreferenceItem is one favorite-instructor entry.
type InstructorPreferenceItem struct {
	CourseNumber string `json:"courseNumber" validate:"required"`
	Role         string `json:"role" validate:"required,oneof=lecture exercise"`
	Instructor   string `json:"instructor" validate:"required"`
}

// ReplacePreferencesRequest replaces the caller's full preference set.
type ReplacePreferencesRequest struct {
	Preferences []InstructorPreferenceItem `json:"preferences" validate:"omitempty,max=64,dive"`
}

// PreferencesView lists the caller's stored preferences.
type PreferencesView struct {
	Preferences []InstructorPreferenceItem `json:"preferences"`
}
