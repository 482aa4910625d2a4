package notification

import (
	"context"

	"voicedesk/models"
)

// Notifier delivers outbound messages to callers. Delivery is best-effort:
// a failure is logged and reported but never undoes a booking.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to, doctor, timeText, bookingURL string) error
	SendReminder(ctx context.Context, payload models.ReminderPayload) error
}

// EscalationNotifier alerts the clinic's on-call staff that a caller asked
// for a human.
type EscalationNotifier interface {
	NotifyEscalation(ctx context.Context, callID, from string) error
}
