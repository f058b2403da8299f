package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusRequested BookingStatus = "REQUESTED"
	StatusApproved  BookingStatus = "APPROVED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusPaid      BookingStatus = "PAID"
	StatusActive    BookingStatus = "ACTIVE"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusRefunded  BookingStatus = "REFUNDED"
)

// allowedTransitions is the booking lifecycle table. Statuses without an
// entry (COMPLETED, REFUNDED) are terminal.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusRequested: {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusPaid, StatusCancelled},
	StatusRejected:  {StatusCancelled},
	StatusPaid:      {StatusActive, StatusCancelled, StatusRefunded},
	StatusActive:    {StatusCompleted, StatusCancelled},
	StatusCancelled: {StatusRefunded},
}

// LiveStatuses are the statuses whose bookings hold their timeslot. Two live
// bookings on the same resource must never overlap.
var LiveStatuses = []BookingStatus{StatusRequested, StatusApproved, StatusPaid, StatusActive}

// CanTransitionTo reports whether the lifecycle table allows moving from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outgoing transitions.
func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// IsLive reports whether a booking in status s still holds its timeslot.
func (s BookingStatus) IsLive() bool {
	for _, live := range LiveStatuses {
		if s == live {
			return true
		}
	}
	return false
}

// Booking is a reservation of a resource for a timeslot. The status field is
// mutated only through the lifecycle state machine; times and price change
// only via the administrative update path.
type Booking struct {
	ID         string        `bson:"id" json:"id"`                   // assigned on creation (UUID)
	UserID     string        `bson:"user_id" json:"user_id"`         // owning user
	ResourceID string        `bson:"resource_id" json:"resource_id"` // booked resource
	StartTime  time.Time     `bson:"start_time" json:"start_time"`
	EndTime    time.Time     `bson:"end_time" json:"end_time"`
	Price      float64       `bson:"price" json:"price"` // final price, currency-agnostic
	Status     BookingStatus `bson:"status" json:"status"`
	CreatedAt  time.Time     `bson:"created_at" json:"created_at"`
}

// Slot returns the booking interval as a Timeslot value.
func (b *Booking) Slot() Timeslot {
	return Timeslot{Start: b.StartTime, End: b.EndTime}
}
