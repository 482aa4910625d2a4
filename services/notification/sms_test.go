package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voicedesk/models"

	"go.uber.org/zap"
)

func newTestNotifier(t *testing.T, handler http.HandlerFunc) *TwilioSMSNotifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	n := NewTwilioSMSNotifier("AC123", "secret", "+15550001111", zap.NewNop())
	n.BaseURL = server.URL
	return n
}

func TestSendBookingConfirmation(t *testing.T) {
	var form map[string][]string
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2010-04-01/Accounts/AC123/Messages.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "secret" {
			t.Error("missing or wrong basic auth")
		}
		r.ParseForm()
		form = r.PostForm
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM1"}`))
	})

	err := n.SendBookingConfirmation(context.Background(), "+15551234567", "Smith", "Monday at 2 PM", "https://calendly.test/d/xyz")
	if err != nil {
		t.Fatal(err)
	}
	if got := form["To"]; len(got) != 1 || got[0] != "+15551234567" {
		t.Errorf("unexpected To field %v", got)
	}
	if got := form["From"]; len(got) != 1 || got[0] != "+15550001111" {
		t.Errorf("unexpected From field %v", got)
	}
	body := strings.Join(form["Body"], "")
	if !strings.Contains(body, "Dr. Smith") || !strings.Contains(body, "https://calendly.test/d/xyz") {
		t.Errorf("unexpected body %q", body)
	}
}

func TestSendBookingConfirmationRejectsBadNumber(t *testing.T) {
	called := false
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	if err := n.SendBookingConfirmation(context.Background(), "not-a-number", "Smith", "Monday at 2 PM", "https://x.test/a"); err == nil {
		t.Fatal("bad recipient must fail")
	}
	if called {
		t.Fatal("no request should be sent for a bad recipient")
	}
}

func TestSendTruncatesOverlongBody(t *testing.T) {
	var body string
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		body = r.PostForm.Get("Body")
		w.WriteHeader(http.StatusCreated)
	})

	err := n.SendReminder(context.Background(), models.ReminderPayload{
		Phone:    "+15551234567",
		Doctor:   strings.Repeat("long name ", 200),
		TimeText: "Monday at 2 PM",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(body) > 1600 {
		t.Fatalf("body exceeds carrier limit: %d bytes", len(body))
	}
	if !strings.HasSuffix(body, "...") {
		t.Fatalf("truncated body should end with ellipsis, got %q", body[len(body)-10:])
	}
}

func TestSendSurfacesDeliveryFailure(t *testing.T) {
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":21211}`))
	})

	err := n.SendBookingConfirmation(context.Background(), "+15551234567", "Smith", "Monday at 2 PM", "https://x.test/a")
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Fatalf("expected a status-400 error, got %v", err)
	}
}
