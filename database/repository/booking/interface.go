package bookingRepo

import (
	"context"
	"errors"
	"time"

	"smartbooking/models"
)

// Repository-level error kinds. The booking service maps these onto its own
// domain errors.
var (
	ErrNotFound = errors.New("booking not found")
	// ErrConflict is returned by Create when another live booking holds an
	// overlapping slot on the same resource by the time the insert runs.
	ErrConflict = errors.New("timeslot already booked")
)

// BookingRepository is the persistence contract consumed by the booking
// lifecycle. Create must behave as if the overlap check and the insert were
// serialized per resource: of two concurrent overlapping creates, at most one
// may succeed.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	UpdateStatus(id string, status models.BookingStatus) error
	UpdateTimes(id string, slot models.Timeslot, price float64) error
	Delete(id string) error
	FindByUser(userID string) ([]models.Booking, error)
	FindPendingApproval() ([]models.Booking, error)
	FindOverlapping(ctx context.Context, resourceID string, start, end time.Time) ([]models.Booking, error)
	FindByResourceAndDay(resourceID string, day time.Time) ([]models.Booking, error)
}
