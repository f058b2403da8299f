package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotAt(t *testing.T, startHour, endHour int) Timeslot {
	t.Helper()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	slot, err := NewTimeslot(day.Add(time.Duration(startHour)*time.Hour), day.Add(time.Duration(endHour)*time.Hour))
	require.NoError(t, err)
	return slot
}

func TestNewTimeslot(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := NewTimeslot(start, start.Add(time.Hour))
	assert.NoError(t, err)

	_, err = NewTimeslot(start, start)
	assert.ErrorIs(t, err, ErrInvalidTimeslot)

	_, err = NewTimeslot(start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTimeslot)
}

func TestTimeslotHours(t *testing.T) {
	slot := slotAt(t, 10, 12)
	assert.Equal(t, 2.0, slot.Hours())

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	half, err := NewTimeslot(start, start.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1.5, half.Hours())
}

func TestTimeslotOverlaps(t *testing.T) {
	base := slotAt(t, 10, 12)

	assert.True(t, base.Overlaps(slotAt(t, 11, 13)), "partial overlap")
	assert.True(t, base.Overlaps(slotAt(t, 9, 13)), "containing slot")
	assert.True(t, base.Overlaps(slotAt(t, 10, 12)), "identical slot")
	assert.True(t, slotAt(t, 11, 13).Overlaps(base), "overlap is symmetric")

	// Half-open intervals: touching boundaries do not overlap.
	assert.False(t, base.Overlaps(slotAt(t, 12, 14)), "adjacent after")
	assert.False(t, base.Overlaps(slotAt(t, 8, 10)), "adjacent before")
	assert.False(t, base.Overlaps(slotAt(t, 14, 16)), "disjoint")
}
