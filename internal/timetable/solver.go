package timetable

import "sort"

// Input is everything one solve pass consumes. Activities must already be
// well formed; malformed slots are rejected at construction and never
// reach the solver.
type Input struct {
	Activities  []*Activity
	Preferences Preferences
	Filters     Filters
	Enrollment  *Enrollment
}

// Collision names the two course variables whose pairwise no-conflict
// constraint most recently rejected an assignment. It is a best-effort
// diagnostic: it reflects the last rejection seen, not a minimal
// unsatisfiable core.
type Collision struct {
	CourseA string
	CourseB string
}

// courseVariable is one search dimension: a course name plus its domain of
// bundles and the unary constraints registered against it.
type courseVariable struct {
	course      string
	domain      [][]*Activity
	constraints []constraint
}

// search owns all per-run state. Every solve call builds its own search,
// so distinct invocations never share mutable state.
type search struct {
	variables     []*courseVariable
	prefs         Preferences
	filters       Filters
	enrollment    *Enrollment
	lastCollision *Collision
}

// newSearch builds one variable per distinct course name. Variables are
// ordered by course name and domains preserve catalogue order, which makes
// enumeration deterministic for identical input.
func newSearch(in Input, minimal bool) *search {
	byCourse := make(map[string][]*Activity)
	names := make([]string, 0)
	for _, activity := range in.Activities {
		if _, seen := byCourse[activity.Name]; !seen {
			names = append(names, activity.Name)
		}
		byCourse[activity.Name] = append(byCourse[activity.Name], activity)
	}
	sort.Strings(names)

	constraints := buildConstraints(in.Filters, in.Enrollment, minimal)
	variables := make([]*courseVariable, 0, len(names))
	for _, name := range names {
		variables = append(variables, &courseVariable{
			course:      name,
			domain:      ExpandOptions(byCourse[name]),
			constraints: constraints,
		})
	}
	return &search{
		variables:  variables,
		prefs:      in.Preferences,
		filters:    in.Filters,
		enrollment: in.Enrollment,
	}
}

// run enumerates every fully consistent assignment under the given
// preference mode. The mode is passed explicitly per pass; rerunning with
// a different mode reuses the variables but none of the transient state.
func (s *search) run(mode PreferenceMode) []*Schedule {
	if len(s.variables) == 0 {
		return nil
	}

	// Forward-check the unary constraints once per variable: a bundle
	// that fails them can never appear in any assignment.
	feasible := make([][][]*Activity, len(s.variables))
	for i, variable := range s.variables {
		for _, bundle := range variable.domain {
			if s.bundleFeasible(variable, bundle, mode) {
				feasible[i] = append(feasible[i], bundle)
			}
		}
		if len(feasible[i]) == 0 {
			return nil
		}
	}

	var schedules []*Schedule
	assignment := make([][]*Activity, len(s.variables))
	var descend func(depth int)
	descend = func(depth int) {
		if depth == len(s.variables) {
			activities := make([]*Activity, 0)
			for _, bundle := range assignment {
				activities = append(activities, bundle...)
			}
			schedules = append(schedules, newSchedule(len(schedules)+1, activities))
			return
		}
		for _, bundle := range feasible[depth] {
			if !s.consistentWithAssigned(depth, bundle, assignment) {
				continue
			}
			assignment[depth] = bundle
			descend(depth + 1)
			assignment[depth] = nil
		}
	}
	descend(0)
	return schedules
}

func (s *search) bundleFeasible(variable *courseVariable, bundle []*Activity, mode PreferenceMode) bool {
	for _, c := range variable.constraints {
		if !evalConstraint(c, variable.course, bundle, mode, s.prefs, s.filters, s.enrollment) {
			return false
		}
	}
	return true
}

// consistentWithAssigned checks the binary no-conflict constraint between
// the candidate bundle and every bundle already assigned, recording the
// colliding course pair on rejection.
func (s *search) consistentWithAssigned(depth int, bundle []*Activity, assignment [][]*Activity) bool {
	for earlier := 0; earlier < depth; earlier++ {
		if bundlesConflict(assignment[earlier], bundle) {
			s.lastCollision = &Collision{
				CourseA: s.variables[earlier].course,
				CourseB: s.variables[depth].course,
			}
			return false
		}
	}
	return true
}

func bundlesConflict(a, b []*Activity) bool {
	for _, left := range a {
		for _, right := range b {
			if left.ConflictsWith(right) {
				return true
			}
		}
	}
	return false
}

// SolveMinimal enumerates assignments under minimal consistency: pairwise
// non-conflict, bundle self-consistency and, when enrollment data is
// supplied, enrollment eligibility. Preference, day, capacity, section and
// administrative filters are skipped entirely. It answers whether a set of
// sections is simultaneously registrable regardless of taste.
func SolveMinimal(in Input) []*Schedule {
	return newSearch(in, true).run(PreferenceNone)
}
