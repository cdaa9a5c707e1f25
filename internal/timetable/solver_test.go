package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sectionSpec struct {
	id         int64
	course     string
	kind       Kind
	instructor string
	capacity   Capacity
	section    string
	notes      string
	slots      []TimeSlot
}

func buildSection(t *testing.T, spec sectionSpec) *Activity {
	t.Helper()
	activity := NewActivity(spec.id, spec.course, spec.kind, true)
	activity.Instructor = spec.instructor
	activity.CourseNumber = spec.course
	activity.ParentCourseNumber = spec.course
	activity.Capacity = spec.capacity
	activity.ActualSectionID = spec.section
	activity.Notes = spec.notes
	if spec.capacity == (Capacity{}) {
		activity.Capacity = Capacity{Max: CapacityUnlimited}
	}
	for _, slot := range spec.slots {
		require.NoError(t, activity.AddSlot(slot))
	}
	return activity
}

func buildPersonal(t *testing.T, id int64, name string, slots ...TimeSlot) *Activity {
	t.Helper()
	activity := NewActivity(id, name, KindPersonal, true)
	for _, slot := range slots {
		require.NoError(t, activity.AddSlot(slot))
	}
	return activity
}

func gymBlock(t *testing.T) *Activity {
	// Monday 12:00-14:30, the personal commitment shared by scenarios.
	return buildPersonal(t, 100, "Gym", MustTimeSlot(Monday, ClockMinutes(12, 0), ClockMinutes(14, 30)))
}

func TestSolveSingleCourseWithPersonalBlock(t *testing.T) {
	lecture := buildSection(t, sectionSpec{
		id: 1, course: "A", kind: KindLecture,
		slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})
	result := Solve(Input{Activities: []*Activity{lecture, gymBlock(t)}, Filters: NewFilters()})

	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Schedules, 1)
	schedule := result.Schedules[0]
	assert.Equal(t, "Option 1", schedule.Name)
	assert.Equal(t, "option_1", schedule.FileName)
	require.Len(t, schedule.Activities, 2)
	assert.True(t, schedule.Contains(lecture))
}

func TestSolveTwoMutuallyExclusiveSections(t *testing.T) {
	morning := buildSection(t, sectionSpec{
		id: 1, course: "A", kind: KindLecture,
		slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})
	noon := buildSection(t, sectionSpec{
		id: 2, course: "A", kind: KindLecture,
		slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(12, 0), ClockMinutes(14, 30))},
	})
	personal := gymBlock(t)

	result := Solve(Input{Activities: []*Activity{morning, noon, personal}, Filters: NewFilters()})
	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Schedules, 2)
	for _, schedule := range result.Schedules {
		require.Len(t, schedule.Activities, 2)
		assert.True(t, schedule.Contains(personal), "each option keeps the personal commitment")
	}
	assert.Equal(t, "option_1", result.Schedules[0].FileName)
	assert.Equal(t, "option_2", result.Schedules[1].FileName)
}

func TestSolveLabCollidesWithPersonalBlock(t *testing.T) {
	lecture := buildSection(t, sectionSpec{
		id: 1, course: "A", kind: KindLecture,
		slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})
	lab := buildSection(t, sectionSpec{
		id: 2, course: "A", kind: KindLab,
		slots: []TimeSlot{MustTimeSlot(Monday, ClockMinutes(12, 0), ClockMinutes(13, 30))},
	})

	result := Solve(Input{Activities: []*Activity{lecture, lab, gymBlock(t)}, Filters: NewFilters()})
	assert.Equal(t, StatusFailed, result.Status)
	assert.Empty(t, result.Schedules)
	require.NotNil(t, result.LastCollision)
	assert.ElementsMatch(t,
		[]string{"A", "Gym"},
		[]string{result.LastCollision.CourseA, result.LastCollision.CourseB})
}

func TestSolvePreferredInstructorStrict(t *testing.T) {
	mike := buildSection(t, sectionSpec{
		id: 1, course: "A", kind: KindLecture, instructor: "Mike",
		slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})
	other := buildSection(t, sectionSpec{
		id: 2, course: "A", kind: KindLecture, instructor: "Dana",
		slots: []TimeSlot{MustTimeSlot(Monday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})

	result := Solve(Input{
		Activities:  []*Activity{mike, other},
		Preferences: Preferences{"A": {Lectures: map[string]struct{}{"Mike": {}}}},
		Filters:     NewFilters(),
	})
	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Schedules, 1)
	assert.True(t, result.Schedules[0].Contains(mike))
}

func TestSolveCapacityFilter(t *testing.T) {
	full := buildSection(t, sectionSpec{
		id: 1, course: "A", kind: KindLecture, capacity: Capacity{Taken: 10, Max: 10},
		slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})
	open := buildSection(t, sectionSpec{
		id: 2, course: "A", kind: KindLecture, capacity: Capacity{Taken: 13, Max: 30},
		slots: []TimeSlot{MustTimeSlot(Monday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})

	filters := NewFilters()
	filters.RequireFreeCapacity = true
	result := Solve(Input{Activities: []*Activity{full, open}, Filters: filters})
	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Schedules, 1)
	assert.True(t, result.Schedules[0].Contains(open))
	assert.False(t, result.Schedules[0].Contains(full))
}

func TestSolveDayRestriction(t *testing.T) {
	sunday := buildSection(t, sectionSpec{
		id: 1, course: "A", kind: KindLecture,
		slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})
	monday := buildSection(t, sectionSpec{
		id: 2, course: "A", kind: KindLecture,
		slots: []TimeSlot{MustTimeSlot(Monday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})

	filters := NewFilters()
	filters.AllowedDays = map[int]struct{}{Monday: {}, Tuesday: {}, Wednesday: {}}
	result := Solve(Input{Activities: []*Activity{sunday, monday}, Filters: filters})
	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Schedules, 1)
	assert.True(t, result.Schedules[0].Contains(monday))
}

func TestSolveSameActualSection(t *testing.T) {
	lectureA := buildSection(t, sectionSpec{
		id: 1, course: "A", kind: KindLecture, section: "11",
		slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})
	labA := buildSection(t, sectionSpec{
		id: 2, course: "A", kind: KindLab, section: "11",
		slots: []TimeSlot{MustTimeSlot(Monday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})
	labB := buildSection(t, sectionSpec{
		id: 3, course: "A", kind: KindLab, section: "12",
		slots: []TimeSlot{MustTimeSlot(Tuesday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})

	filters := NewFilters()
	filters.RequireSameActualSection = true
	result := Solve(Input{Activities: []*Activity{lectureA, labA, labB}, Filters: filters})
	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Schedules, 1, "mixing section 11 lecture with section 12 lab is forbidden")
	assert.True(t, result.Schedules[0].Contains(labA))
}

func TestSolveExcludesAdministrativeSections(t *testing.T) {
	regular := buildSection(t, sectionSpec{
		id: 1, course: "A", kind: KindLecture,
		slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})
	placeholder := buildSection(t, sectionSpec{
		id: 2, course: "A", kind: KindLecture, notes: "Administrative registration only",
		slots: []TimeSlot{MustTimeSlot(Monday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})

	filters := NewFilters()
	filters.ExcludeAdministrative = true
	result := Solve(Input{Activities: []*Activity{regular, placeholder}, Filters: filters})
	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Schedules, 1)
	assert.True(t, result.Schedules[0].Contains(regular))
}

func TestSolveEnrollmentEligibility(t *testing.T) {
	lecture := buildSection(t, sectionSpec{
		id: 1, course: "A", kind: KindLecture,
		slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})
	labShared := buildSection(t, sectionSpec{
		id: 2, course: "A", kind: KindLab,
		slots: []TimeSlot{MustTimeSlot(Monday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})
	labDisjoint := buildSection(t, sectionSpec{
		id: 3, course: "A", kind: KindLab,
		slots: []TimeSlot{MustTimeSlot(Tuesday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})

	filters := NewFilters()
	filters.EnrollmentEligibleOnly = true
	filters.Degree = "cs"
	enrollment := &Enrollment{
		Groups: map[int64][]int64{
			1: {10, 20},
			2: {20},
			3: {30}, // no group in common with the lecture
		},
		CourseDegrees: map[string][]string{"A": {"cs"}},
	}

	result := Solve(Input{Activities: []*Activity{lecture, labShared, labDisjoint}, Filters: filters, Enrollment: enrollment})
	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Schedules, 1, "only the bundle sharing enrollment group 20 is registrable")
	assert.True(t, result.Schedules[0].Contains(labShared))
}

func TestSolveEnrollmentDegreeExemption(t *testing.T) {
	lecture := buildSection(t, sectionSpec{
		id: 1, course: "SPORT1", kind: KindLecture,
		slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})

	filters := NewFilters()
	filters.EnrollmentEligibleOnly = true
	filters.Degree = "cs"
	enrollment := &Enrollment{
		// The activity is absent from the group map, which would
		// normally reject it; the course is offered to several degrees
		// none of which is the active one, so the check is skipped.
		Groups:        map[int64][]int64{99: {1}},
		CourseDegrees: map[string][]string{"SPORT1": {"sports", "humanities"}},
	}

	result := Solve(Input{Activities: []*Activity{lecture}, Filters: filters, Enrollment: enrollment})
	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Schedules, 1)
}

func TestSolveIsDeterministic(t *testing.T) {
	build := func() []*Activity {
		return []*Activity{
			buildSection(t, sectionSpec{id: 1, course: "A", kind: KindLecture,
				slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(9, 0), ClockMinutes(10, 0))}}),
			buildSection(t, sectionSpec{id: 2, course: "A", kind: KindLecture,
				slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(11, 0), ClockMinutes(12, 0))}}),
			buildSection(t, sectionSpec{id: 3, course: "B", kind: KindLecture,
				slots: []TimeSlot{MustTimeSlot(Monday, ClockMinutes(9, 0), ClockMinutes(10, 0))}}),
			buildSection(t, sectionSpec{id: 4, course: "B", kind: KindLecture,
				slots: []TimeSlot{MustTimeSlot(Monday, ClockMinutes(11, 0), ClockMinutes(12, 0))}}),
		}
	}

	first := Solve(Input{Activities: build(), Filters: NewFilters()})
	second := Solve(Input{Activities: build(), Filters: NewFilters()})

	require.Equal(t, StatusSuccess, first.Status)
	require.Len(t, first.Schedules, 4)
	require.Len(t, second.Schedules, len(first.Schedules))
	for i := range first.Schedules {
		assert.Equal(t, first.Schedules[i].FileName, second.Schedules[i].FileName)
		assert.True(t, first.Schedules[i].Equal(second.Schedules[i]))
	}
}

func TestSolveMinimalIgnoresTasteFilters(t *testing.T) {
	full := buildSection(t, sectionSpec{
		id: 1, course: "A", kind: KindLecture, instructor: "Dana",
		capacity: Capacity{Taken: 10, Max: 10},
		slots:    []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})

	filters := NewFilters()
	filters.RequireFreeCapacity = true
	schedules := SolveMinimal(Input{
		Activities:  []*Activity{full},
		Preferences: Preferences{"A": {Lectures: map[string]struct{}{"Mike": {}}}},
		Filters:     filters,
	})
	require.Len(t, schedules, 1, "minimal consistency skips capacity and preference entirely")
}

func TestSolveMinimalStillChecksConflictsAndEnrollment(t *testing.T) {
	a := buildSection(t, sectionSpec{
		id: 1, course: "A", kind: KindLecture,
		slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(12, 0))},
	})
	b := buildSection(t, sectionSpec{
		id: 2, course: "B", kind: KindLecture,
		slots: []TimeSlot{MustTimeSlot(Sunday, ClockMinutes(11, 0), ClockMinutes(13, 0))},
	})
	assert.Empty(t, SolveMinimal(Input{Activities: []*Activity{a, b}}))

	c := buildSection(t, sectionSpec{
		id: 3, course: "C", kind: KindLecture,
		slots: []TimeSlot{MustTimeSlot(Monday, ClockMinutes(10, 0), ClockMinutes(11, 0))},
	})
	enrollment := &Enrollment{Groups: map[int64][]int64{1: {10}}}
	assert.Empty(t, SolveMinimal(Input{Activities: []*Activity{c}, Enrollment: enrollment}),
		"activity missing from the enrollment map is not registrable")
}

func TestSolveEmptyCatalogue(t *testing.T) {
	result := Solve(Input{Filters: NewFilters()})
	assert.Equal(t, StatusFailed, result.Status)
	assert.Empty(t, result.Schedules)
	assert.Nil(t, result.LastCollision)
}
