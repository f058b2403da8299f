package cron

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"smartbooking/config"
	"smartbooking/models"
)

// Task types handled by the lifecycle worker.
const (
	TypeBookingActivate = "booking:activate"
	TypeBookingComplete = "booking:complete"
)

type lifecycleTaskPayload struct {
	BookingID string `json:"booking_id"`
}

// Scheduler enqueues deferred lifecycle tasks at the booking's slot
// boundaries. It satisfies the booking service's Scheduler contract.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler builds a Scheduler on the configured redis queue.
func NewScheduler() *Scheduler {
	return &Scheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

// ScheduleActivation enqueues the PAID -> ACTIVE task for the slot start.
func (s *Scheduler) ScheduleActivation(b *models.Booking) error {
	return s.enqueueAt(TypeBookingActivate, b)
}

// ScheduleCompletion enqueues the ACTIVE -> COMPLETED task for the slot end.
func (s *Scheduler) ScheduleCompletion(b *models.Booking) error {
	task, err := newLifecycleTask(TypeBookingComplete, b.ID)
	if err != nil {
		return err
	}
	if _, err := s.client.Enqueue(task, asynq.ProcessAt(b.EndTime)); err != nil {
		return fmt.Errorf("failed to enqueue %s for booking %s: %w", TypeBookingComplete, b.ID, err)
	}
	return nil
}

func (s *Scheduler) enqueueAt(taskType string, b *models.Booking) error {
	task, err := newLifecycleTask(taskType, b.ID)
	if err != nil {
		return err
	}
	if _, err := s.client.Enqueue(task, asynq.ProcessAt(b.StartTime)); err != nil {
		return fmt.Errorf("failed to enqueue %s for booking %s: %w", taskType, b.ID, err)
	}
	return nil
}

func newLifecycleTask(taskType, bookingID string) (*asynq.Task, error) {
	payload, err := json.Marshal(lifecycleTaskPayload{BookingID: bookingID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task payload: %w", err)
	}
	return asynq.NewTask(taskType, payload), nil
}
