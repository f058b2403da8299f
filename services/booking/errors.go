package booking

import (
	"errors"
	"fmt"

	"smartbooking/models"
)

// Domain error kinds. Handlers map these to HTTP status codes; the services
// never retry or swallow them.
var (
	// ErrInvalidRequest marks bad caller input, e.g. a start time in the past.
	ErrInvalidRequest = errors.New("invalid booking request")
	// ErrNotFound marks an unknown booking or resource id.
	ErrNotFound = errors.New("not found")
	// ErrTimeslotConflict marks an overlap with an existing live booking.
	ErrTimeslotConflict = errors.New("requested timeslot conflicts with an existing booking")
)

// IllegalTransitionError reports a status change the lifecycle table forbids.
type IllegalTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal booking transition: %s -> %s", e.From, e.To)
}

// IsIllegalTransition reports whether err is an IllegalTransitionError.
func IsIllegalTransition(err error) bool {
	var ite *IllegalTransitionError
	return errors.As(err, &ite)
}
