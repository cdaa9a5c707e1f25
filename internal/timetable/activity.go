package timetable

import (
	"errors"
	"sort"
	"strings"
)

// ErrSlotConflict is returned when a meeting slot being added to an
// activity overlaps one the activity already holds.
var ErrSlotConflict = errors.New("timetable: slot conflicts with an existing slot on this activity")

// Kind classifies a schedulable activity.
type Kind int

const (
	KindPersonal Kind = iota
	KindLecture
	KindLab
	KindPractice
	KindSeminar
)

var kindNames = map[Kind]string{
	KindPersonal: "personal",
	KindLecture:  "lecture",
	KindLab:      "lab",
	KindPractice: "practice",
	KindSeminar:  "seminar",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindFromString maps catalogue row values onto a Kind. Unrecognized
// values fall back to lecture so a malformed row still schedules.
func KindFromString(raw string) Kind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "personal":
		return KindPersonal
	case "lab":
		return KindLab
	case "practice", "exercise", "tutorial":
		return KindPractice
	case "seminar":
		return KindSeminar
	default:
		return KindLecture
	}
}

// IsLecture reports whether preference matching treats this kind as a
// lecture-type section.
func (k Kind) IsLecture() bool {
	return k == KindLecture || k == KindSeminar
}

// IsExercise reports whether preference matching treats this kind as an
// exercise-type section (lab or practice).
func (k Kind) IsExercise() bool {
	return k == KindLab || k == KindPractice
}

// CapacityUnlimited marks a section with no seat limit.
const CapacityUnlimited = -1

// Capacity tracks seat usage of an academic section. Max below zero means
// unlimited.
type Capacity struct {
	Taken int
	Max   int
}

// HasFree reports whether at least one seat remains.
func (c Capacity) HasFree() bool {
	return c.Max < 0 || c.Taken < c.Max
}

// Activity is one schedulable unit: a class section or a personal block.
// The ID is a synthetic sequential identifier used only for tie-breaking
// and enrollment lookups, never for semantic equality.
type Activity struct {
	ID                 int64
	Name               string
	Kind               Kind
	AttendanceRequired bool

	// Academic fields; zero-valued for personal activities.
	Instructor         string
	CourseNumber       string
	ParentCourseNumber string
	Location           string
	Capacity           Capacity
	ActualSectionID    string
	Notes              string

	slots []TimeSlot
}

// NewActivity builds an empty activity of the given kind.
func NewActivity(id int64, name string, kind Kind, attendanceRequired bool) *Activity {
	return &Activity{ID: id, Name: name, Kind: kind, AttendanceRequired: attendanceRequired}
}

// AddSlot appends a meeting window, rejecting slots that overlap one the
// activity already holds.
func (a *Activity) AddSlot(slot TimeSlot) error {
	for _, existing := range a.slots {
		if existing.Overlaps(slot) {
			return ErrSlotConflict
		}
	}
	a.slots = append(a.slots, slot)
	return nil
}

// Slots returns the activity's meeting windows in insertion order. The
// returned slice must not be mutated.
func (a *Activity) Slots() []TimeSlot {
	return a.slots
}

// ConflictsWith reports whether two activities cannot coexist on one
// schedule: both require attendance and at least one slot pair overlaps.
func (a *Activity) ConflictsWith(other *Activity) bool {
	if a == nil || other == nil {
		return false
	}
	if !a.AttendanceRequired || !other.AttendanceRequired {
		return false
	}
	for _, mine := range a.slots {
		for _, theirs := range other.slots {
			if mine.Overlaps(theirs) {
				return true
			}
		}
	}
	return false
}

// Equal compares activities structurally: name, kind, attendance flag and
// slot set. IDs are deliberately excluded.
func (a *Activity) Equal(other *Activity) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.Name != other.Name || a.Kind != other.Kind || a.AttendanceRequired != other.AttendanceRequired {
		return false
	}
	if len(a.slots) != len(other.slots) {
		return false
	}
	mine := sortedSlots(a.slots)
	theirs := sortedSlots(other.slots)
	for i := range mine {
		if mine[i] != theirs[i] {
			return false
		}
	}
	return true
}

func sortedSlots(slots []TimeSlot) []TimeSlot {
	out := make([]TimeSlot, len(slots))
	copy(out, slots)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
