package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "smartbooking/database/repository/booking"
	"smartbooking/models"
	"smartbooking/services/resource"
)

// CreateBooking validates the request, checks for conflicts, prices the slot
// through the resource's pricing policy and persists the booking in
// REQUESTED. Resources whose approval policy does not require an admin are
// immediately transitioned to APPROVED.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, userID, resourceID string, slot models.Timeslot) (*models.Booking, error) {
	now := s.now()
	if !slot.Start.After(now) {
		return nil, fmt.Errorf("%w: start time must be in the future", ErrInvalidRequest)
	}

	res, err := s.Resources.GetResource(resourceID)
	if errors.Is(err, resource.ErrNotFound) {
		return nil, fmt.Errorf("%w: resource %s not found", ErrInvalidRequest, resourceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load resource %s: %w", resourceID, err)
	}

	overlaps, err := s.Bookings.FindOverlapping(ctx, resourceID, slot.Start, slot.End)
	if err != nil {
		return nil, fmt.Errorf("conflict check failed: %w", err)
	}
	if len(overlaps) > 0 {
		return nil, ErrTimeslotConflict
	}

	basePrice := slot.Hours() * res.BasePricePerHour
	price := PricingPolicyFor(res.PricingPolicyKey).CalculatePrice(res, slot, basePrice)

	b := &models.Booking{
		ID:         uuid.New().String(),
		UserID:     userID,
		ResourceID: resourceID,
		StartTime:  slot.Start,
		EndTime:    slot.End,
		Price:      price,
		Status:     models.StatusRequested,
		CreatedAt:  now,
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		// The repository serializes concurrent creates; a lost race surfaces
		// here rather than from the pre-check above.
		if errors.Is(err, bookingRepo.ErrConflict) {
			return nil, ErrTimeslotConflict
		}
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if !ApprovalPolicyFor(res.ApprovalPolicyKey).RequiresApproval(res) {
		if err := s.Machine.Transition(ctx, b, models.StatusApproved); err != nil {
			return nil, err
		}
		if err := s.Bookings.UpdateStatus(b.ID, b.Status); err != nil {
			return nil, fmt.Errorf("failed to persist auto-approval: %w", err)
		}
		if err := s.Audit.Log(userID, models.AuditBookingAutoApproved, fmt.Sprintf("Booking %s auto-approved", b.ID)); err != nil {
			return nil, err
		}
	} else {
		if err := s.Audit.Log(userID, models.AuditBookingRequested, fmt.Sprintf("Booking %s awaiting approval", b.ID)); err != nil {
			return nil, err
		}
	}

	s.Logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("resource_id", resourceID),
		zap.String("status", string(b.Status)),
		zap.Float64("price", b.Price),
	)
	return b, nil
}

// ApproveBooking moves a requested booking to APPROVED.
func (s *DefaultBookingService) ApproveBooking(ctx context.Context, adminID, bookingID string) (*models.Booking, error) {
	b, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.Machine.Transition(ctx, b, models.StatusApproved); err != nil {
		return nil, err
	}
	if err := s.Bookings.UpdateStatus(b.ID, b.Status); err != nil {
		return nil, fmt.Errorf("failed to persist approval: %w", err)
	}
	if err := s.Audit.Log(adminID, models.AuditBookingApproved, fmt.Sprintf("Booking %s approved", b.ID)); err != nil {
		return nil, err
	}
	return b, nil
}

// RejectBooking moves a requested booking to REJECTED.
func (s *DefaultBookingService) RejectBooking(ctx context.Context, adminID, bookingID string) (*models.Booking, error) {
	b, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.Machine.Transition(ctx, b, models.StatusRejected); err != nil {
		return nil, err
	}
	if err := s.Bookings.UpdateStatus(b.ID, b.Status); err != nil {
		return nil, fmt.Errorf("failed to persist rejection: %w", err)
	}
	if err := s.Audit.Log(adminID, models.AuditBookingRejected, fmt.Sprintf("Booking %s rejected", b.ID)); err != nil {
		return nil, err
	}
	return b, nil
}

// PayBooking moves an approved booking to PAID and records the payment of the
// booking's price. Activation and completion are scheduled for the slot
// boundaries when a scheduler is wired.
func (s *DefaultBookingService) PayBooking(ctx context.Context, userID, bookingID, method string) (*models.Booking, error) {
	b, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.Machine.Transition(ctx, b, models.StatusPaid); err != nil {
		return nil, err
	}
	if err := s.Bookings.UpdateStatus(b.ID, b.Status); err != nil {
		return nil, fmt.Errorf("failed to persist payment status: %w", err)
	}
	if _, err := s.Payments.RecordPayment(ctx, b.ID, b.Price, method); err != nil {
		return nil, err
	}
	if err := s.Audit.Log(userID, models.AuditBookingPaid, fmt.Sprintf("Booking %s paid", b.ID)); err != nil {
		return nil, err
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.ScheduleActivation(b); err != nil {
			s.Logger.Warn("failed to schedule activation", zap.String("booking_id", b.ID), zap.Error(err))
		}
		if err := s.Scheduler.ScheduleCompletion(b); err != nil {
			s.Logger.Warn("failed to schedule completion", zap.String("booking_id", b.ID), zap.Error(err))
		}
	}
	return b, nil
}

// CancelBooking moves the booking to CANCELLED. When the booking had already
// been paid (PAID or ACTIVE), the resource's cancellation policy decides the
// refund: a positive refund percentage transitions the booking further to
// REFUNDED and records a refund payment.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	b, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	previous := b.Status
	if err := s.Machine.Transition(ctx, b, models.StatusCancelled); err != nil {
		return nil, err
	}
	if err := s.Bookings.UpdateStatus(b.ID, b.Status); err != nil {
		return nil, fmt.Errorf("failed to persist cancellation: %w", err)
	}

	if previous != models.StatusPaid && previous != models.StatusActive {
		if err := s.Audit.Log(userID, models.AuditBookingCancelled, fmt.Sprintf("Booking %s cancelled", b.ID)); err != nil {
			return nil, err
		}
		return b, nil
	}

	res, err := s.Resources.GetResource(b.ResourceID)
	if errors.Is(err, resource.ErrNotFound) {
		return nil, fmt.Errorf("%w: resource %s", ErrNotFound, b.ResourceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load resource %s: %w", b.ResourceID, err)
	}

	hoursBeforeStart := int64(b.StartTime.Sub(s.now()).Hours())
	refundPercent := CancellationPolicyFor(res.CancellationPolicyKey).RefundPercent(hoursBeforeStart)
	if refundPercent > 0 {
		if err := s.Machine.Transition(ctx, b, models.StatusRefunded); err != nil {
			return nil, err
		}
		if err := s.Bookings.UpdateStatus(b.ID, b.Status); err != nil {
			return nil, fmt.Errorf("failed to persist refund status: %w", err)
		}
		if _, err := s.Payments.RecordRefund(ctx, b.ID, b.Price*refundPercent); err != nil {
			return nil, err
		}
		details := fmt.Sprintf("Booking %s refunded at %.0f%%", b.ID, refundPercent*100)
		if err := s.Audit.Log(userID, models.AuditBookingRefunded, details); err != nil {
			return nil, err
		}
		return b, nil
	}

	if err := s.Audit.Log(userID, models.AuditBookingCancelled, fmt.Sprintf("Booking %s cancelled", b.ID)); err != nil {
		return nil, err
	}
	return b, nil
}

// ActivateBooking moves a paid booking to ACTIVE once its slot has started.
// Driven by the scheduler worker.
func (s *DefaultBookingService) ActivateBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.Machine.Transition(ctx, b, models.StatusActive); err != nil {
		return nil, err
	}
	if err := s.Bookings.UpdateStatus(b.ID, b.Status); err != nil {
		return nil, fmt.Errorf("failed to persist activation: %w", err)
	}
	return b, nil
}

// CompleteBooking moves an active booking to COMPLETED once its slot has
// ended. Driven by the scheduler worker.
func (s *DefaultBookingService) CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.Machine.Transition(ctx, b, models.StatusCompleted); err != nil {
		return nil, err
	}
	if err := s.Bookings.UpdateStatus(b.ID, b.Status); err != nil {
		return nil, fmt.Errorf("failed to persist completion: %w", err)
	}
	return b, nil
}

// ListUserBookings lists all bookings owned by the user.
func (s *DefaultBookingService) ListUserBookings(userID string) ([]models.Booking, error) {
	return s.Bookings.FindByUser(userID)
}

// ListPendingBookings lists bookings awaiting an admin decision.
func (s *DefaultBookingService) ListPendingBookings() ([]models.Booking, error) {
	return s.Bookings.FindPendingApproval()
}

// GetTimetable lists the live bookings touching a resource's calendar day.
func (s *DefaultBookingService) GetTimetable(_ context.Context, resourceID string, day time.Time) ([]models.Booking, error) {
	return s.Bookings.FindByResourceAndDay(resourceID, day)
}

// AdminUpdateBooking corrects a booking's times and price directly. This is
// the administrative path: no conflict check, no policy flow, no transition.
func (s *DefaultBookingService) AdminUpdateBooking(_ context.Context, adminID, bookingID string, slot models.Timeslot, price float64) (*models.Booking, error) {
	b, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.Bookings.UpdateTimes(b.ID, slot, price); err != nil {
		return nil, fmt.Errorf("failed to update booking %s: %w", b.ID, err)
	}
	b.StartTime = slot.Start
	b.EndTime = slot.End
	b.Price = price
	details := fmt.Sprintf("Booking %s times/price corrected by admin", b.ID)
	if err := s.Audit.Log(adminID, models.AuditBookingUpdated, details); err != nil {
		return nil, err
	}
	return b, nil
}

// AdminDeleteBooking removes a booking outright. Administrative override; the
// lifecycle itself never deletes.
func (s *DefaultBookingService) AdminDeleteBooking(_ context.Context, adminID, bookingID string) error {
	b, err := s.loadBooking(bookingID)
	if err != nil {
		return err
	}
	if err := s.Bookings.Delete(b.ID); err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", b.ID, err)
	}
	return s.Audit.Log(adminID, models.AuditBookingDeleted, fmt.Sprintf("Booking %s deleted", b.ID))
}

func (s *DefaultBookingService) loadBooking(bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	return b, nil
}
