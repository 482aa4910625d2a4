// Package cron runs the background reminder worker that drains the
// redis-backed queue and sends reminder SMS ahead of appointments.
package cron

import (
	"context"
	"encoding/json"
	"time"

	"voicedesk/config"
	"voicedesk/models"
	"voicedesk/services/notification"
	"voicedesk/services/tasks"
	"voicedesk/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	workerConcurrency = 10
	startAttempts     = 5
)

// InitReminderWorker runs the asynq worker until the process exits.
// Callers run it on its own goroutine. Startup is retried with backoff
// so a redis restart during deploy does not kill the worker.
func InitReminderWorker(notifier notification.Notifier) {
	logger := utils.GetLogger().Named("reminder_worker")

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		},
		asynq.Config{
			Concurrency: workerConcurrency,
			Queues:      map[string]int{"default": 1},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, reminderHandler(notifier, logger))

	for attempt := 1; ; attempt++ {
		logger.Info("starting worker", zap.Int("attempt", attempt))
		err := srv.Run(mux)
		if err == nil {
			return
		}
		if attempt >= startAttempts {
			logger.Fatal("worker failed to start", zap.Error(err))
		}
		logger.Warn("worker start failed, retrying", zap.Error(err))
		time.Sleep(time.Duration(attempt*2) * time.Second)
	}
}

func reminderHandler(notifier notification.Notifier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			logger.Error("dropping reminder with bad payload", zap.Error(err))
			// Unmarshalable payloads never succeed on retry.
			return nil
		}

		if err := notifier.SendReminder(ctx, payload); err != nil {
			logger.Warn("reminder send failed",
				zap.String("appointment_id", payload.AppointmentID),
				zap.Error(err),
			)
			return err
		}
		logger.Info("reminder sent", zap.String("appointment_id", payload.AppointmentID))
		return nil
	}
}
