package notification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voicedesk/models"
	"voicedesk/utils"

	"go.uber.org/zap"
)

// smsBodyLimit is the carrier-side message size cap.
const smsBodyLimit = 1600

// TwilioSMSNotifier sends confirmation and reminder texts through the
// Twilio Messages REST endpoint.
type TwilioSMSNotifier struct {
	AccountSID string
	AuthToken  string
	From       string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewTwilioSMSNotifier(accountSID, authToken, from string, logger *zap.Logger) *TwilioSMSNotifier {
	return &TwilioSMSNotifier{
		AccountSID: accountSID,
		AuthToken:  authToken,
		From:       from,
		BaseURL:    "https://api.twilio.com",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logger,
	}
}

// SendBookingConfirmation texts the booking link to the caller.
func (n *TwilioSMSNotifier) SendBookingConfirmation(ctx context.Context, to, doctor, timeText, bookingURL string) error {
	to = utils.SanitizePhone(to)
	doctor = utils.SanitizeText(doctor)
	timeText = utils.SanitizeText(timeText)
	link := utils.SanitizeURL(bookingURL)

	if to == "" || doctor == "" || timeText == "" || link == "" {
		return fmt.Errorf("missing required confirmation fields")
	}
	if !models.E164Pattern.MatchString(to) {
		return fmt.Errorf("recipient number is not a valid phone number")
	}

	body := fmt.Sprintf("Your appointment with Dr. %s is confirmed for %s. Details: %s", doctor, timeText, link)
	return n.send(ctx, to, body)
}

// SendReminder texts an upcoming-appointment reminder.
func (n *TwilioSMSNotifier) SendReminder(ctx context.Context, payload models.ReminderPayload) error {
	to := utils.SanitizePhone(payload.Phone)
	if !models.E164Pattern.MatchString(to) {
		return fmt.Errorf("reminder recipient number is not a valid phone number")
	}

	body := fmt.Sprintf("Reminder: your appointment with Dr. %s is coming up at %s.",
		utils.SanitizeText(payload.Doctor), utils.SanitizeText(payload.TimeText))
	if link := utils.SanitizeURL(payload.BookingURL); link != "" {
		body += " Details: " + link
	}
	return n.send(ctx, to, body)
}

func (n *TwilioSMSNotifier) send(ctx context.Context, to, body string) error {
	if len(body) > smsBodyLimit {
		n.Logger.Warn("sms body exceeds carrier limit, truncating", zap.Int("length", len(body)))
		body = body[:smsBodyLimit-3] + "..."
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", n.From)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", n.BaseURL, n.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.SetBasicAuth(n.AccountSID, n.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms delivery returned status %d: %s", resp.StatusCode, respBody)
	}

	n.Logger.Info("sms sent", zap.String("to", to))
	return nil
}
