package models

import (
	"errors"
	"time"
)

// ErrInvalidTimeslot is returned when a timeslot does not end after it starts.
var ErrInvalidTimeslot = errors.New("invalid timeslot: end must be after start")

// Timeslot is a half-open interval [Start, End).
type Timeslot struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// NewTimeslot builds a validated timeslot. It fails with ErrInvalidTimeslot
// unless end is strictly after start.
func NewTimeslot(start, end time.Time) (Timeslot, error) {
	if !end.After(start) {
		return Timeslot{}, ErrInvalidTimeslot
	}
	return Timeslot{Start: start, End: end}, nil
}

// Duration returns the slot length.
func (t Timeslot) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// Hours returns the slot length in fractional hours.
func (t Timeslot) Hours() float64 {
	return t.Duration().Minutes() / 60.0
}

// Overlaps reports whether the two half-open intervals share any instant.
// Adjacent slots (t.End == other.Start) do not overlap.
func (t Timeslot) Overlaps(other Timeslot) bool {
	return t.Start.Before(other.End) && other.Start.Before(t.End)
}
