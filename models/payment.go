package models

import "time"

// PaymentStatus marks a payment record as a charge or a refund.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// MethodRefund is the synthetic method recorded on refund payments.
const MethodRefund = "REFUND"

// Payment is an append-only money movement tied to a booking. Created only by
// the booking lifecycle on PAID and REFUNDED transitions.
type Payment struct {
	ID             string        `bson:"id" json:"id"`
	BookingID      string        `bson:"booking_id" json:"booking_id"`
	Amount         float64       `bson:"amount" json:"amount"`
	Method         string        `bson:"method" json:"method"` // e.g. "card", "cash", "REFUND"
	Status         PaymentStatus `bson:"status" json:"status"`
	StripeIntentID string        `bson:"stripe_intent_id,omitempty" json:"stripe_intent_id,omitempty"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
}
