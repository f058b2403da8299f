package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	notificationRepo "smartbooking/database/repository/notification"
	"smartbooking/models"
)

// Service delivers in-app notifications. It is also the observer that turns
// every booking status change into a notification for the booking's owner.
type Service interface {
	NotifyUser(ctx context.Context, userID, message string) error
	GetNotifications(userID string) ([]models.Notification, error)
	OnBookingStatusChanged(ctx context.Context, b *models.Booking, oldStatus, newStatus models.BookingStatus) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo   notificationRepo.NotificationRepository
	Logger *zap.Logger
}

// NotifyUser persists a notification record for the user.
func (s *DefaultNotificationService) NotifyUser(_ context.Context, userID, message string) error {
	n := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(n); err != nil {
		return fmt.Errorf("failed to notify user %s: %w", userID, err)
	}
	return nil
}

// GetNotifications lists a user's notifications, newest first.
func (s *DefaultNotificationService) GetNotifications(userID string) ([]models.Notification, error) {
	return s.Repo.FindByUser(userID)
}

// OnBookingStatusChanged notifies the booking owner about the transition.
func (s *DefaultNotificationService) OnBookingStatusChanged(ctx context.Context, b *models.Booking, oldStatus, newStatus models.BookingStatus) error {
	message := fmt.Sprintf("Booking %s status changed: %s -> %s", b.ID, oldStatus, newStatus)
	if err := s.NotifyUser(ctx, b.UserID, message); err != nil {
		return err
	}
	s.Logger.Debug("status change notification sent",
		zap.String("booking_id", b.ID),
		zap.String("old", string(oldStatus)),
		zap.String("new", string(newStatus)),
	)
	return nil
}
