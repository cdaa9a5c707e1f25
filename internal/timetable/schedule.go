package timetable

import "fmt"

// Schedule is one complete, internally consistent assignment: exactly one
// bundle per course plus every personal block. The activity list is a
// shared view into the solver's input, not an owned copy. Schedules are
// created only by the solver and are immutable afterwards.
type Schedule struct {
	Name        string
	FileName    string
	Description string
	Activities  []*Activity
}

func newSchedule(ordinal int, activities []*Activity) *Schedule {
	return &Schedule{
		Name:       fmt.Sprintf("Option %d", ordinal),
		FileName:   fmt.Sprintf("option_%d", ordinal),
		Activities: activities,
	}
}

// Contains reports whether the schedule holds an activity structurally
// equal to the given one.
func (s *Schedule) Contains(activity *Activity) bool {
	for _, item := range s.Activities {
		if item.Equal(activity) {
			return true
		}
	}
	return false
}

// Equal compares schedules by mutual activity-set containment. Names and
// slugs are presentation only.
func (s *Schedule) Equal(other *Schedule) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Activities) != len(other.Activities) {
		return false
	}
	for _, item := range s.Activities {
		if !other.Contains(item) {
			return false
		}
	}
	return true
}
