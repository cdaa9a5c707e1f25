package timetable

import (
	"errors"
	"fmt"
)

// ErrInvalidTimeRange is returned when a slot is constructed with a
// start time at or after its end time.
var ErrInvalidTimeRange = errors.New("timetable: slot start must be before end")

// Weekday indices follow ISO-8601: Monday is 1, Sunday is 7.
const (
	Monday    = 1
	Tuesday   = 2
	Wednesday = 3
	Thursday  = 4
	Friday    = 5
	Saturday  = 6
	Sunday    = 7
)

// ClockMinutes converts a wall-clock hour and minute into minutes since
// midnight, the unit TimeSlot works in.
func ClockMinutes(hour, minute int) int {
	return hour*60 + minute
}

// TimeSlot is a single weekly meeting window: one day of the week plus a
// half-open [Start,End) interval in minutes since midnight. Immutable once
// constructed.
type TimeSlot struct {
	Day   int
	Start int
	End   int
}

// NewTimeSlot validates and builds a slot. Day must be 1..7 and Start must
// be strictly before End.
func NewTimeSlot(day, start, end int) (TimeSlot, error) {
	if day < Monday || day > Sunday {
		return TimeSlot{}, fmt.Errorf("timetable: day %d out of range 1..7", day)
	}
	if start >= end {
		return TimeSlot{}, ErrInvalidTimeRange
	}
	return TimeSlot{Day: day, Start: start, End: end}, nil
}

// MustTimeSlot builds a slot and panics on invalid input. Intended for
// fixtures and static tables.
func MustTimeSlot(day, start, end int) TimeSlot {
	slot, err := NewTimeSlot(day, start, end)
	if err != nil {
		panic(err)
	}
	return slot
}

// Overlaps reports whether two slots collide: same day and intersecting
// half-open intervals. Back-to-back slots (one ending exactly when the
// other starts) do not overlap.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	if t.Day != other.Day {
		return false
	}
	return t.Start < other.End && other.Start < t.End
}

// Before orders slots by day, then by start time, then by end time.
func (t TimeSlot) Before(other TimeSlot) bool {
	if t.Day != other.Day {
		return t.Day < other.Day
	}
	if t.Start != other.Start {
		return t.Start < other.Start
	}
	return t.End < other.End
}

// Precedes reports whether this slot ends on or before the other starts on
// the same day, i.e. the two could be attended back to back.
func (t TimeSlot) Precedes(other TimeSlot) bool {
	return t.Day == other.Day && t.End <= other.Start
}

// String renders the slot as "day 3 10:00-11:30".
func (t TimeSlot) String() string {
	return fmt.Sprintf("day %d %02d:%02d-%02d:%02d", t.Day, t.Start/60, t.Start%60, t.End/60, t.End%60)
}
