package booking

import (
	"context"

	"smartbooking/models"
)

// StatusObserver receives every booking status change, synchronously, in
// registration order. An observer error propagates to the transition caller;
// observers registered after the failing one are not notified.
type StatusObserver interface {
	OnBookingStatusChanged(ctx context.Context, b *models.Booking, oldStatus, newStatus models.BookingStatus) error
}

// StatusObserverFunc adapts a function to the StatusObserver interface.
type StatusObserverFunc func(ctx context.Context, b *models.Booking, oldStatus, newStatus models.BookingStatus) error

func (f StatusObserverFunc) OnBookingStatusChanged(ctx context.Context, b *models.Booking, oldStatus, newStatus models.BookingStatus) error {
	return f(ctx, b, oldStatus, newStatus)
}

// StateMachine validates booking status changes against the lifecycle table
// and dispatches them to a fixed observer list. The observer list is set once
// at wiring time; the machine owns no other state and is safe to share.
type StateMachine struct {
	observers []StatusObserver
}

// NewStateMachine builds a state machine with the given observers.
func NewStateMachine(observers ...StatusObserver) *StateMachine {
	return &StateMachine{observers: observers}
}

// Transition moves b to newStatus. It fails with *IllegalTransitionError when
// the lifecycle table forbids the change, leaving b untouched and notifying
// nobody. On a legal change it mutates b.Status and notifies every observer
// with (booking, old, new) before returning.
func (m *StateMachine) Transition(ctx context.Context, b *models.Booking, newStatus models.BookingStatus) error {
	if !b.Status.CanTransitionTo(newStatus) {
		return &IllegalTransitionError{From: b.Status, To: newStatus}
	}
	oldStatus := b.Status
	b.Status = newStatus
	for _, obs := range m.observers {
		if err := obs.OnBookingStatusChanged(ctx, b, oldStatus, newStatus); err != nil {
			return err
		}
	}
	return nil
}
