package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeSlotRejectsInvertedRange(t *testing.T) {
	_, err := NewTimeSlot(Sunday, ClockMinutes(11, 0), ClockMinutes(10, 0))
	require.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = NewTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(10, 0))
	require.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestNewTimeSlotRejectsBadDay(t *testing.T) {
	_, err := NewTimeSlot(0, ClockMinutes(10, 0), ClockMinutes(11, 0))
	require.Error(t, err)
	_, err = NewTimeSlot(8, ClockMinutes(10, 0), ClockMinutes(11, 0))
	require.Error(t, err)
}

func TestTimeSlotOverlaps(t *testing.T) {
	cases := []struct {
		name    string
		a, b    TimeSlot
		overlap bool
	}{
		{
			name:    "same day intersecting",
			a:       MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(12, 0)),
			b:       MustTimeSlot(Sunday, ClockMinutes(11, 0), ClockMinutes(13, 0)),
			overlap: true,
		},
		{
			name:    "contained interval",
			a:       MustTimeSlot(Monday, ClockMinutes(9, 0), ClockMinutes(17, 0)),
			b:       MustTimeSlot(Monday, ClockMinutes(12, 0), ClockMinutes(13, 0)),
			overlap: true,
		},
		{
			name:    "different days",
			a:       MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(12, 0)),
			b:       MustTimeSlot(Monday, ClockMinutes(10, 0), ClockMinutes(12, 0)),
			overlap: false,
		},
		{
			name:    "back to back does not overlap",
			a:       MustTimeSlot(Sunday, ClockMinutes(10, 0), ClockMinutes(11, 0)),
			b:       MustTimeSlot(Sunday, ClockMinutes(11, 0), ClockMinutes(12, 0)),
			overlap: false,
		},
		{
			name:    "disjoint same day",
			a:       MustTimeSlot(Tuesday, ClockMinutes(8, 0), ClockMinutes(9, 0)),
			b:       MustTimeSlot(Tuesday, ClockMinutes(14, 0), ClockMinutes(15, 0)),
			overlap: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlap, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.overlap, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestTimeSlotOrdering(t *testing.T) {
	early := MustTimeSlot(Monday, ClockMinutes(8, 0), ClockMinutes(9, 0))
	late := MustTimeSlot(Monday, ClockMinutes(10, 0), ClockMinutes(11, 0))
	nextDay := MustTimeSlot(Tuesday, ClockMinutes(8, 0), ClockMinutes(9, 0))

	assert.True(t, early.Before(late))
	assert.False(t, late.Before(early))
	assert.True(t, late.Before(nextDay), "ordering is by day first")
	assert.True(t, early.Precedes(late))
	assert.False(t, early.Precedes(nextDay), "precedes requires the same day")
}
