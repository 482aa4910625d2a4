package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMEscalationNotifier pushes an alert to the on-call staff device when a
// caller asks to speak to a human.
type FCMEscalationNotifier struct {
	Client     *messaging.Client
	StaffToken string
	Logger     *zap.Logger
}

func NewFCMEscalationNotifier(client *messaging.Client, staffToken string, logger *zap.Logger) *FCMEscalationNotifier {
	return &FCMEscalationNotifier{Client: client, StaffToken: staffToken, Logger: logger}
}

// NotifyEscalation sends the push. Callers treat failures as best-effort:
// the phone call is dialed through to support regardless.
func (n *FCMEscalationNotifier) NotifyEscalation(ctx context.Context, callID, from string) error {
	if n.StaffToken == "" {
		return fmt.Errorf("no staff device token configured")
	}

	msg := &messaging.Message{
		Token: n.StaffToken,
		Notification: &messaging.Notification{
			Title: "Caller requested a human",
			Body:  fmt.Sprintf("Incoming transfer from %s", from),
		},
		Data: map[string]string{
			"callId": callID,
			"from":   from,
		},
	}

	response, err := n.Client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send escalation push: %w", err)
	}

	n.Logger.Info("escalation push sent", zap.String("callId", callID), zap.String("response", response))
	return nil
}
