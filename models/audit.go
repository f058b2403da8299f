package models

import "time"

// Audit actions recorded by the booking lifecycle.
const (
	AuditBookingRequested    = "BOOKING_REQUESTED"
	AuditBookingAutoApproved = "BOOKING_AUTO_APPROVED"
	AuditBookingApproved     = "BOOKING_APPROVED"
	AuditBookingRejected     = "BOOKING_REJECTED"
	AuditBookingPaid         = "BOOKING_PAID"
	AuditBookingCancelled    = "BOOKING_CANCELLED"
	AuditBookingRefunded     = "BOOKING_REFUNDED"
	AuditBookingUpdated      = "BOOKING_UPDATED"
	AuditBookingDeleted      = "BOOKING_DELETED"
)

// AuditLog is an append-only record of who did what.
type AuditLog struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"` // acting user or admin
	Action    string    `bson:"action" json:"action"`
	Details   string    `bson:"details" json:"details"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
