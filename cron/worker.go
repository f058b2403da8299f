package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"smartbooking/config"
	"smartbooking/models"
	"smartbooking/services/booking"
	"smartbooking/utils"
)

// InitLifecycleWorker starts the background worker that drives bookings
// through their timed transitions: PAID -> ACTIVE at slot start and
// ACTIVE -> COMPLETED at slot end. The server restarts itself on failure.
func InitLifecycleWorker(svc booking.Service) {
	logger := utils.GetLogger().With(zap.String("component", "lifecycleWorker"))

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingActivate, func(ctx context.Context, t *asynq.Task) error {
		return handleLifecycleTask(ctx, t, svc.ActivateBooking, logger)
	})
	mux.HandleFunc(TypeBookingComplete, func(ctx context.Context, t *asynq.Task) error {
		return handleLifecycleTask(ctx, t, svc.CompleteBooking, logger)
	})

	go func() {
		for {
			if err := srv.Run(mux); err != nil {
				logger.Error("Lifecycle worker stopped, restarting", zap.Error(err))
				time.Sleep(5 * time.Second)
				continue
			}
			return
		}
	}()
	logger.Info("Lifecycle worker started")
}

// handleLifecycleTask applies one timed transition. A booking that was
// cancelled or already moved on is not an error worth retrying, so illegal
// transitions and missing bookings drop the task.
func handleLifecycleTask(
	ctx context.Context,
	t *asynq.Task,
	transition func(ctx context.Context, bookingID string) (*models.Booking, error),
	logger *zap.Logger,
) error {
	var payload lifecycleTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", t.Type(), err)
	}

	b, err := transition(ctx, payload.BookingID)
	if err != nil {
		if booking.IsIllegalTransition(err) || errors.Is(err, booking.ErrNotFound) {
			logger.Info("Dropping stale lifecycle task",
				zap.String("task", t.Type()),
				zap.String("bookingID", payload.BookingID),
				zap.Error(err))
			return nil
		}
		return fmt.Errorf("%s failed for booking %s: %w", t.Type(), payload.BookingID, err)
	}

	logger.Info("Applied timed transition",
		zap.String("task", t.Type()),
		zap.String("bookingID", b.ID),
		zap.String("status", string(b.Status)))
	return nil
}
