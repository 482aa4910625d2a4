package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"voicedesk/config"
	"voicedesk/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds the queued task that fires a reminder SMS at fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Scheduler enqueues reminder tasks onto the redis-backed queue.
type Scheduler struct {
	client *asynq.Client
	lead   time.Duration
}

// NewScheduler connects an asynq client to the reminder queue. lead is how
// long before the appointment the reminder fires.
func NewScheduler(lead time.Duration) *Scheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &Scheduler{client: client, lead: lead}
}

// ScheduleReminder enqueues one reminder ahead of the appointment start.
// Appointments closer than the lead time get no reminder.
func (s *Scheduler) ScheduleReminder(ctx context.Context, payload models.ReminderPayload, startsAt time.Time) error {
	fireAt := startsAt.Add(-s.lead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (s *Scheduler) Close() error {
	return s.client.Close()
}
