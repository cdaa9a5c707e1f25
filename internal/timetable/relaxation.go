package timetable

// Status reports which relaxation tier produced the result.
type Status int

const (
	// StatusSuccess: solved on the first, strictest pass.
	StatusSuccess Status = iota
	// StatusPartialFavorites: solved only after allowing bundles where
	// at least one section matches a preferred instructor.
	StatusPartialFavorites
	// StatusWithoutFavorites: solved only after dropping instructor
	// preference entirely.
	StatusWithoutFavorites
	// StatusFailed: no assignment exists even with no preferences.
	StatusFailed
)

var statusNames = map[Status]string{
	StatusSuccess:          "success",
	StatusPartialFavorites: "success_partial_favorites",
	StatusWithoutFavorites: "success_without_favorites",
	StatusFailed:           "failed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Succeeded reports whether at least one schedule was found at any tier.
func (s Status) Succeeded() bool {
	return s != StatusFailed
}

// Result is the solver outcome: every consistent schedule, the relaxation
// tier that produced them and, on failure, the last colliding course pair
// for user-facing diagnostics. An exhausted search is a normal outcome,
// never an error.
type Result struct {
	Schedules     []*Schedule
	Status        Status
	LastCollision *Collision
}

// Solve runs the relaxation ladder: strict preferred-instructor matching,
// then partial matching, then no preference. At most three passes run. A
// pass that yields schedules ends the ladder; relaxation only ever widens
// the feasible set, so a later tier can never lose schedules an earlier
// tier found.
func Solve(in Input) Result {
	s := newSearch(in, false)

	schedules := s.run(PreferenceStrict)
	if len(schedules) > 0 {
		return Result{Schedules: schedules, Status: StatusSuccess}
	}
	if in.Preferences.Empty() {
		// Without preferences the strict pass already was the weakest
		// one; retrying cannot change the outcome.
		return Result{Status: StatusFailed, LastCollision: s.lastCollision}
	}

	schedules = s.run(PreferencePartial)
	if len(schedules) > 0 {
		return Result{Schedules: schedules, Status: StatusPartialFavorites}
	}

	schedules = s.run(PreferenceNone)
	if len(schedules) > 0 {
		return Result{Schedules: schedules, Status: StatusWithoutFavorites}
	}
	return Result{Status: StatusFailed, LastCollision: s.lastCollision}
}
