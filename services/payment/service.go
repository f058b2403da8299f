package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"smartbooking/config"
	paymentRepo "smartbooking/database/repository/payment"
	"smartbooking/models"
)

// Service records booking payments and refunds. Records are append-only;
// money never moves outside a lifecycle transition.
type Service interface {
	RecordPayment(ctx context.Context, bookingID string, amount float64, method string) (*models.Payment, error)
	RecordRefund(ctx context.Context, bookingID string, amount float64) (*models.Payment, error)
	ListByBooking(bookingID string) ([]models.Payment, error)
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Repo   paymentRepo.PaymentRepository
	Logger *zap.Logger
}

// RecordPayment stores a PAID record for the booking. Card payments are
// additionally registered with Stripe; the intent id is kept on the record.
func (s *DefaultPaymentService) RecordPayment(ctx context.Context, bookingID string, amount float64, method string) (*models.Payment, error) {
	p := &models.Payment{
		ID:        uuid.New().String(),
		BookingID: bookingID,
		Amount:    amount,
		Method:    method,
		Status:    models.PaymentPaid,
		CreatedAt: time.Now(),
	}

	if method == "card" {
		intent, err := s.createIntent(ctx, bookingID, amount)
		if err != nil {
			return nil, fmt.Errorf("card payment failed for booking %s: %w", bookingID, err)
		}
		p.StripeIntentID = intent.ID
	}

	if err := s.Repo.Create(p); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	s.Logger.Info("payment recorded",
		zap.String("booking_id", bookingID),
		zap.Float64("amount", amount),
		zap.String("method", method),
	)
	return p, nil
}

// RecordRefund stores a REFUNDED record for the booking.
func (s *DefaultPaymentService) RecordRefund(ctx context.Context, bookingID string, amount float64) (*models.Payment, error) {
	p := &models.Payment{
		ID:        uuid.New().String(),
		BookingID: bookingID,
		Amount:    amount,
		Method:    models.MethodRefund,
		Status:    models.PaymentRefunded,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, fmt.Errorf("failed to record refund: %w", err)
	}
	s.Logger.Info("refund recorded",
		zap.String("booking_id", bookingID),
		zap.Float64("amount", amount),
	)
	return p, nil
}

// ListByBooking returns the payment history of a booking.
func (s *DefaultPaymentService) ListByBooking(bookingID string) ([]models.Payment, error) {
	return s.Repo.FindByBooking(bookingID)
}

func (s *DefaultPaymentService) createIntent(_ context.Context, bookingID string, amount float64) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(math.Round(amount * 100))),
		Currency:           stripe.String(config.AppConfig.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Description:        stripe.String("booking " + bookingID),
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent failed: %w", err)
	}
	return intent, nil
}
