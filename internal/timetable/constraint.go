package timetable

import "strings"

// PreferenceMode sets how strongly favorite-instructor preferences are
// enforced during one solver pass. The mode is threaded explicitly through
// each pass; it is never shared mutable state.
type PreferenceMode int

const (
	// PreferenceStrict requires every preference-covered activity in a
	// bundle to be taught by a preferred instructor.
	PreferenceStrict PreferenceMode = iota
	// PreferencePartial accepts a bundle when at least one covered
	// activity matches a preferred instructor.
	PreferencePartial
	// PreferenceNone disables instructor preference entirely.
	PreferenceNone
)

func (m PreferenceMode) String() string {
	switch m {
	case PreferenceStrict:
		return "strict"
	case PreferencePartial:
		return "partial"
	default:
		return "none"
	}
}

// CoursePreference names the acceptable instructors for one course, split
// by section role. An empty set means no preference for that role.
type CoursePreference struct {
	Lectures  map[string]struct{}
	Exercises map[string]struct{}
}

// Empty reports whether no instructor preference is recorded at all.
func (p CoursePreference) Empty() bool {
	return len(p.Lectures) == 0 && len(p.Exercises) == 0
}

func (p CoursePreference) setFor(kind Kind) map[string]struct{} {
	switch {
	case kind.IsLecture():
		return p.Lectures
	case kind.IsExercise():
		return p.Exercises
	default:
		return nil
	}
}

// Preferences maps course names to instructor preferences.
type Preferences map[string]CoursePreference

// Empty reports whether no course carries any preference.
func (p Preferences) Empty() bool {
	for _, pref := range p {
		if !pref.Empty() {
			return false
		}
	}
	return true
}

// DefaultAdministrativeMarkers are the note substrings that flag a section
// as an administrative placeholder rather than a real class offering.
var DefaultAdministrativeMarkers = []string{"administrative", "staff only"}

// Filters is the settings bundle the solver consumes. The zero value
// disables every optional constraint; NewFilters seeds the administrative
// markers.
type Filters struct {
	// AllowedDays restricts meetings to the listed weekdays. Nil or a
	// full set means no restriction.
	AllowedDays map[int]struct{}
	// RequireFreeCapacity rejects bundles holding a full section.
	RequireFreeCapacity bool
	// RequireSameActualSection forbids mixing sub-type sections of
	// different concrete offerings of one course.
	RequireSameActualSection bool
	// ExcludeAdministrative rejects sections whose notes carry one of
	// the administrative markers.
	ExcludeAdministrative bool
	// EnrollmentEligibleOnly enables the enrollment-group predicate when
	// enrollment data is supplied.
	EnrollmentEligibleOnly bool
	// Degree scopes the enrollment-eligibility exemption for courses
	// offered under several degrees.
	Degree string
	// AdministrativeMarkers override the default note markers.
	AdministrativeMarkers []string
}

// NewFilters returns a Filters value with default markers and no
// restrictions.
func NewFilters() Filters {
	return Filters{AdministrativeMarkers: DefaultAdministrativeMarkers}
}

func (f Filters) restrictsDays() bool {
	if len(f.AllowedDays) == 0 || len(f.AllowedDays) >= 7 {
		return false
	}
	return true
}

func (f Filters) markers() []string {
	if len(f.AdministrativeMarkers) > 0 {
		return f.AdministrativeMarkers
	}
	return DefaultAdministrativeMarkers
}

// Enrollment carries eligibility data for the enrollment-group predicate:
// which enrollment groups each activity may be registered under, and which
// degrees each parent course is offered for.
type Enrollment struct {
	// Groups maps activity id to the group ids eligible for it.
	Groups map[int64][]int64
	// CourseDegrees maps a parent course number to the degrees offering
	// that course.
	CourseDegrees map[string][]string
}

// constraintKind tags the closed set of unary predicate variants. All
// evaluation is dispatched through evalConstraint; there are no
// runtime-attached callables.
type constraintKind int

const (
	constraintSelfConsistent constraintKind = iota
	constraintPreferredInstructor
	constraintDayFilter
	constraintCapacity
	constraintSameSection
	constraintAdministrative
	constraintEnrollment
)

type constraint struct {
	kind constraintKind
}

// buildConstraints registers the unary constraints one course variable is
// subject to, conditional on the active filters. Self-consistency and the
// instructor predicate are always present; the rest follow configuration.
// The minimal-consistency variant keeps only self-consistency and, when
// enrollment data exists, the enrollment predicate.
func buildConstraints(filters Filters, enrollment *Enrollment, minimal bool) []constraint {
	constraints := []constraint{{kind: constraintSelfConsistent}}
	if minimal {
		if enrollment != nil && len(enrollment.Groups) > 0 {
			constraints = append(constraints, constraint{kind: constraintEnrollment})
		}
		return constraints
	}
	constraints = append(constraints, constraint{kind: constraintPreferredInstructor})
	if filters.restrictsDays() {
		constraints = append(constraints, constraint{kind: constraintDayFilter})
	}
	if filters.RequireFreeCapacity {
		constraints = append(constraints, constraint{kind: constraintCapacity})
	}
	if filters.RequireSameActualSection {
		constraints = append(constraints, constraint{kind: constraintSameSection})
	}
	if filters.ExcludeAdministrative {
		constraints = append(constraints, constraint{kind: constraintAdministrative})
	}
	if filters.EnrollmentEligibleOnly && enrollment != nil && len(enrollment.Groups) > 0 {
		constraints = append(constraints, constraint{kind: constraintEnrollment})
	}
	return constraints
}

// evalConstraint is the single evaluator for the tagged variants.
func evalConstraint(c constraint, course string, bundle []*Activity, mode PreferenceMode, prefs Preferences, filters Filters, enrollment *Enrollment) bool {
	switch c.kind {
	case constraintSelfConsistent:
		return bundleSelfConsistent(bundle)
	case constraintPreferredInstructor:
		return bundleMatchesPreference(course, bundle, mode, prefs)
	case constraintDayFilter:
		return bundleWithinDays(bundle, filters.AllowedDays)
	case constraintCapacity:
		return bundleHasFreeCapacity(bundle)
	case constraintSameSection:
		return bundleSharesActualSection(bundle)
	case constraintAdministrative:
		return bundleNotAdministrative(bundle, filters.markers())
	case constraintEnrollment:
		return bundleEnrollmentEligible(bundle, filters.Degree, enrollment)
	default:
		return false
	}
}

func bundleSelfConsistent(bundle []*Activity) bool {
	for i := 0; i < len(bundle); i++ {
		for j := i + 1; j < len(bundle); j++ {
			if bundle[i].ConflictsWith(bundle[j]) {
				return false
			}
		}
	}
	return true
}

func bundleMatchesPreference(course string, bundle []*Activity, mode PreferenceMode, prefs Preferences) bool {
	if mode == PreferenceNone {
		return true
	}
	pref, ok := prefs[course]
	if !ok || pref.Empty() {
		return true
	}

	matched := false
	covered := false
	for _, activity := range bundle {
		if activity.Kind == KindPersonal {
			continue
		}
		set := pref.setFor(activity.Kind)
		if len(set) == 0 {
			continue
		}
		covered = true
		if _, ok := set[activity.Instructor]; ok {
			matched = true
		} else if mode == PreferenceStrict {
			return false
		}
	}
	if !covered {
		return true
	}
	if mode == PreferencePartial {
		return matched
	}
	return true
}

func bundleWithinDays(bundle []*Activity, allowed map[int]struct{}) bool {
	for _, activity := range bundle {
		for _, slot := range activity.Slots() {
			if _, ok := allowed[slot.Day]; !ok {
				return false
			}
		}
	}
	return true
}

func bundleHasFreeCapacity(bundle []*Activity) bool {
	for _, activity := range bundle {
		if activity.Kind == KindPersonal {
			continue
		}
		if !activity.Capacity.HasFree() {
			return false
		}
	}
	return true
}

func bundleSharesActualSection(bundle []*Activity) bool {
	section := ""
	for _, activity := range bundle {
		if activity.Kind == KindPersonal {
			continue
		}
		if section == "" {
			section = activity.ActualSectionID
			continue
		}
		if activity.ActualSectionID != section {
			return false
		}
	}
	return true
}

func bundleNotAdministrative(bundle []*Activity, markers []string) bool {
	for _, activity := range bundle {
		notes := strings.ToLower(activity.Notes)
		for _, marker := range markers {
			if marker != "" && strings.Contains(notes, strings.ToLower(marker)) {
				return false
			}
		}
	}
	return true
}

// bundleEnrollmentEligible requires every activity of the bundle to be
// registrable under one common enrollment group. Courses offered to
// several degrees none of which is the caller's active degree are exempt:
// those are administrative cross-listings unrelated to the current track.
func bundleEnrollmentEligible(bundle []*Activity, degree string, enrollment *Enrollment) bool {
	if enrollment == nil || len(enrollment.Groups) == 0 {
		return true
	}
	if bundleDegreeExempt(bundle, degree, enrollment) {
		return true
	}

	// Common-group sub-solve: each activity contributes its eligible
	// group-id set as a domain; the bundle passes only when the
	// intersection over all domains is non-empty.
	var common map[int64]struct{}
	for _, activity := range bundle {
		if activity.Kind == KindPersonal {
			continue
		}
		groups, ok := enrollment.Groups[activity.ID]
		if !ok {
			return false
		}
		if common == nil {
			common = make(map[int64]struct{}, len(groups))
			for _, id := range groups {
				common[id] = struct{}{}
			}
			continue
		}
		next := make(map[int64]struct{})
		for _, id := range groups {
			if _, ok := common[id]; ok {
				next[id] = struct{}{}
			}
		}
		common = next
		if len(common) == 0 {
			return false
		}
	}
	return true
}

func bundleDegreeExempt(bundle []*Activity, degree string, enrollment *Enrollment) bool {
	if len(enrollment.CourseDegrees) == 0 {
		return false
	}
	for _, activity := range bundle {
		if activity.Kind == KindPersonal || activity.ParentCourseNumber == "" {
			continue
		}
		degrees := enrollment.CourseDegrees[activity.ParentCourseNumber]
		if len(degrees) <= 1 {
			return false
		}
		for _, candidate := range degrees {
			if candidate == degree {
				return false
			}
		}
		return true
	}
	return false
}
