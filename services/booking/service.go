package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	bookingRepo "smartbooking/database/repository/booking"
	"smartbooking/models"
	"smartbooking/services/audit"
	"smartbooking/services/payment"
	"smartbooking/services/resource"
)

// Service orchestrates the booking lifecycle: creation, approval, payment,
// cancellation and the reads the UI layers need. All mutating operations take
// the acting user/admin id for audit attribution.
type Service interface {
	CreateBooking(ctx context.Context, userID, resourceID string, slot models.Timeslot) (*models.Booking, error)
	ApproveBooking(ctx context.Context, adminID, bookingID string) (*models.Booking, error)
	RejectBooking(ctx context.Context, adminID, bookingID string) (*models.Booking, error)
	PayBooking(ctx context.Context, userID, bookingID, method string) (*models.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	ActivateBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListUserBookings(userID string) ([]models.Booking, error)
	ListPendingBookings() ([]models.Booking, error)
	GetTimetable(ctx context.Context, resourceID string, day time.Time) ([]models.Booking, error)
	AdminUpdateBooking(ctx context.Context, adminID, bookingID string, slot models.Timeslot, price float64) (*models.Booking, error)
	AdminDeleteBooking(ctx context.Context, adminID, bookingID string) error
}

// Scheduler defers lifecycle work to booking start and end times. PayBooking
// uses it best-effort; a scheduling failure never fails the payment.
type Scheduler interface {
	ScheduleActivation(b *models.Booking) error
	ScheduleCompletion(b *models.Booking) error
}

// DefaultBookingService implements Service.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Resources resource.Service
	Machine   *StateMachine
	Payments  payment.Service
	Audit     audit.Service
	Scheduler Scheduler // optional
	Logger    *zap.Logger

	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
