package dialogue

import (
	"context"
	"time"

	"voicedesk/database/repository/records"
	"voicedesk/models"
	"voicedesk/services/notification"
	"voicedesk/services/scheduling"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderScheduler enqueues a reminder to fire ahead of an appointment.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, startsAt time.Time) error
}

// Outcome reports a successful finalization.
type Outcome struct {
	BookingURL    string
	AppointmentID string
}

// Finalizer turns a fully captured session into exactly one appointment.
// Validation and creation failures retain the session so the caller can
// retry; only success deletes it, which makes creation at-most-once per
// call.
type Finalizer struct {
	Store     SessionStore
	Oracle    scheduling.Service
	Records   recordsRepo.AppointmentRecordRepository
	Notifier  notification.Notifier
	Reminders ReminderScheduler
	Logger    *zap.Logger
	Now       func() time.Time
}

func NewFinalizer(store SessionStore, oracle scheduling.Service, records recordsRepo.AppointmentRecordRepository, notifier notification.Notifier, reminders ReminderScheduler, logger *zap.Logger) *Finalizer {
	return &Finalizer{
		Store:     store,
		Oracle:    oracle,
		Records:   records,
		Notifier:  notifier,
		Reminders: reminders,
		Logger:    logger,
		Now:       time.Now,
	}
}

// Finalize validates the accumulated details, creates the appointment,
// records it, and fans out confirmation and reminder. The record, SMS and
// reminder legs are best effort; a booked appointment is never rolled back
// because a side channel failed.
func (f *Finalizer) Finalize(ctx context.Context, sess *models.CallSession) (*Outcome, error) {
	logger := f.Logger.With(zap.String("callId", sess.CallID))

	req := models.BookingRequest{
		Doctor:   sess.Doctor,
		TimeText: sess.TimeText,
		Name:     sess.Name,
		Phone:    sess.Phone,
		Address:  sess.Address,
	}
	guest := req.Guest()
	if err := guest.Validate(); err != nil {
		return nil, NewValidationError("guest", err.Error())
	}

	bookingURL, err := f.Oracle.CreateAppointment(ctx, sess.Doctor, "", guest, sess.TimeText)
	if err != nil {
		return nil, &CollaboratorError{Op: "appointment creation", Err: err}
	}
	logger.Info("appointment created", zap.String("doctor", sess.Doctor), zap.String("bookingUrl", bookingURL))

	startsAt, parseErr := scheduling.ParseTimeText(sess.TimeText, f.Now())
	record := models.AppointmentRecord{
		ID:         uuid.NewString(),
		CallID:     sess.CallID,
		Doctor:     scheduling.NormalizeDoctor(sess.Doctor),
		TimeText:   sess.TimeText,
		StartsAt:   startsAt,
		GuestName:  sess.Name,
		GuestPhone: sess.Phone,
		BookingURL: bookingURL,
		CreatedAt:  f.Now(),
	}
	if _, err := f.Records.Create(ctx, record); err != nil {
		logger.Error("failed to record appointment", zap.Error(err))
	}

	if parseErr != nil {
		logger.Warn("skipping reminder, start time unparseable", zap.Error(parseErr))
	} else if f.Reminders != nil {
		payload := models.ReminderPayload{
			AppointmentID: record.ID,
			Phone:         sess.Phone,
			Doctor:        sess.Doctor,
			TimeText:      sess.TimeText,
			BookingURL:    bookingURL,
		}
		if err := f.Reminders.ScheduleReminder(ctx, payload, startsAt); err != nil {
			logger.Error("failed to schedule reminder", zap.Error(err))
		}
	}

	if err := f.Notifier.SendBookingConfirmation(ctx, sess.Phone, sess.Doctor, sess.TimeText, bookingURL); err != nil {
		logger.Error("failed to send confirmation", zap.Error(err))
	}

	if err := f.Store.Delete(ctx, sess.CallID); err != nil {
		logger.Error("failed to delete completed session", zap.Error(err))
	}

	return &Outcome{BookingURL: bookingURL, AppointmentID: record.ID}, nil
}
