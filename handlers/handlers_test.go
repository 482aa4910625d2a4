package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	doctorRepoPkg "voicedesk/database/repository/doctor"
	"voicedesk/models"
	"voicedesk/services/dialogue"
	"voicedesk/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memStore struct {
	mu       sync.Mutex
	sessions map[string]*models.CallSession
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*models.CallSession)}
}

func (s *memStore) Get(_ context.Context, callID string) (*models.CallSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[callID]
	if !ok {
		return nil, dialogue.ErrSessionNotFound
	}
	copy := *sess
	return &copy, nil
}

func (s *memStore) Update(_ context.Context, callID string, create bool, fn func(*models.CallSession) error) (*models.CallSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[callID]
	if !ok {
		if !create {
			return nil, dialogue.ErrSessionNotFound
		}
		sess = &models.CallSession{CallID: callID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	}
	work := *sess
	if err := fn(&work); err != nil {
		return nil, err
	}
	s.sessions[callID] = &work
	copy := work
	return &copy, nil
}

func (s *memStore) Delete(_ context.Context, callID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, callID)
	return nil
}

type stubOracle struct{}

func (stubOracle) IsTimeAvailable(_ context.Context, _, _ string) (bool, error) { return true, nil }
func (stubOracle) CreateAppointment(_ context.Context, _, _ string, _ models.GuestInfo, _ string) (string, error) {
	return "https://calendly.test/d/xyz", nil
}

type stubDoctorRepo struct {
	schedules map[string]*models.DoctorSchedule
	upserts   int
}

func (r *stubDoctorRepo) Upsert(_ context.Context, s models.DoctorSchedule) (string, error) {
	r.upserts++
	return "id-1", nil
}

func (r *stubDoctorRepo) GetByName(_ context.Context, name string) (*models.DoctorSchedule, error) {
	s, ok := r.schedules[name]
	if !ok {
		return nil, doctorRepoPkg.ErrDoctorNotFound
	}
	return s, nil
}

func (r *stubDoctorRepo) List(_ context.Context) ([]models.DoctorSchedule, error) {
	var out []models.DoctorSchedule
	for _, s := range r.schedules {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubDoctorRepo) DeleteByName(_ context.Context, _ string) error { return nil }

type stubRecordsRepo struct{}

func (stubRecordsRepo) Create(_ context.Context, r models.AppointmentRecord) (string, error) {
	return r.ID, nil
}
func (stubRecordsRepo) GetByID(_ context.Context, _ string) (*models.AppointmentRecord, error) {
	return nil, nil
}
func (stubRecordsRepo) GetByDoctor(_ context.Context, _ string) ([]models.AppointmentRecord, error) {
	return nil, nil
}
func (stubRecordsRepo) DeleteByID(_ context.Context, _ string) error { return nil }

type recordingNotifier struct{ sent int }

func (n *recordingNotifier) SendBookingConfirmation(_ context.Context, _, _, _, _ string) error {
	n.sent++
	return nil
}
func (n *recordingNotifier) SendReminder(_ context.Context, _ models.ReminderPayload) error {
	return nil
}

func newTestBundle() (*HandlerBundle, *gin.Engine) {
	logger := zap.NewNop()
	store := newMemStore()
	oracle := stubOracle{}

	doctors := &stubDoctorRepo{schedules: map[string]*models.DoctorSchedule{
		"patel": {
			Name: "patel",
			Windows: []models.WeeklyWindow{
				{Day: "monday", Start: "09:00", End: "12:00"},
			},
		},
	}}

	finalizer := dialogue.NewFinalizer(store, oracle, stubRecordsRepo{}, &recordingNotifier{}, nil, logger)
	machine := dialogue.NewMachine(store, oracle, finalizer, logger)

	hb := &HandlerBundle{
		Machine:            machine,
		Local:              scheduling.NewLocalAvailability(doctors),
		DoctorRepo:         doctors,
		RecordsRepo:        stubRecordsRepo{},
		HumanSupportNumber: "+15550009999",
		Logger:             logger,
	}

	r := gin.New()
	r.POST(dialogue.ActionVoice, hb.VoiceHandler)
	r.POST(dialogue.ActionSelection, hb.ProcessSelectionHandler)
	r.POST(dialogue.ActionBook, hb.BookAppointmentHandler)
	r.POST(dialogue.ActionCaptureDoctor, hb.CaptureDoctorNameHandler)
	r.POST(dialogue.ActionCaptureTime, hb.CaptureAppointmentTimeHandler)
	r.POST(dialogue.ActionCaptureAvailDoc, hb.CaptureAvailabilityDoctorHandler)
	r.POST("/api/admin/doctors", hb.UpsertDoctorHandler)
	return hb, r
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVoiceHandlerSpeaksMenu(t *testing.T) {
	_, r := newTestBundle()
	w := postForm(t, r, dialogue.ActionVoice, url.Values{"CallSid": {"CA1"}, "From": {"+15551234567"}})

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Fatalf("content type %q", ct)
	}
	if !strings.Contains(body, "Press 1 to book an appointment") {
		t.Fatalf("menu prompt missing:\n%s", body)
	}
	if !strings.Contains(body, `numDigits="1"`) {
		t.Fatalf("menu must gather one digit:\n%s", body)
	}
}

func TestProcessSelectionRoutes(t *testing.T) {
	_, r := newTestBundle()

	// 1 starts the booking dialogue.
	w := postForm(t, r, dialogue.ActionSelection, url.Values{"Digits": {"1"}, "CallSid": {"CA2"}})
	if !strings.Contains(w.Body.String(), dialogue.ActionCaptureDoctor) {
		t.Fatalf("digit 1 must gather toward the doctor step:\n%s", w.Body.String())
	}

	// 5 dials the staff line.
	w = postForm(t, r, dialogue.ActionSelection, url.Values{"Digits": {"5"}, "CallSid": {"CA2"}})
	if !strings.Contains(w.Body.String(), "<Dial>+15550009999</Dial>") {
		t.Fatalf("digit 5 must dial support:\n%s", w.Body.String())
	}

	// Anything else replays the menu.
	w = postForm(t, r, dialogue.ActionSelection, url.Values{"Digits": {"9"}, "CallSid": {"CA2"}})
	if !strings.Contains(w.Body.String(), "Press 1 to book an appointment") {
		t.Fatalf("digit 9 must replay the menu:\n%s", w.Body.String())
	}
}

func TestCaptureDoctorNameAdvancesToTimeStep(t *testing.T) {
	_, r := newTestBundle()
	w := postForm(t, r, dialogue.ActionCaptureDoctor, url.Values{
		"CallSid":      {"CA3"},
		"SpeechResult": {"Patel"},
	})

	body := w.Body.String()
	if !strings.Contains(body, "Doctor Patel") {
		t.Fatalf("confirmation prompt missing:\n%s", body)
	}
	if !strings.Contains(body, dialogue.ActionCaptureTime) {
		t.Fatalf("next gather must target the time step:\n%s", body)
	}
}

func TestCaptureDoctorNameWithoutSpeechReprompts(t *testing.T) {
	_, r := newTestBundle()
	w := postForm(t, r, dialogue.ActionCaptureDoctor, url.Values{"CallSid": {"CA4"}})

	if !strings.Contains(w.Body.String(), dialogue.ActionCaptureDoctor) {
		t.Fatalf("empty speech must re-gather the doctor step:\n%s", w.Body.String())
	}
}

func TestAvailabilityDescribesKnownDoctor(t *testing.T) {
	_, r := newTestBundle()
	w := postForm(t, r, dialogue.ActionCaptureAvailDoc, url.Values{
		"CallSid":      {"CA5"},
		"SpeechResult": {"Patel"},
	})

	body := w.Body.String()
	if !strings.Contains(body, "monday from 09:00 to 12:00") {
		t.Fatalf("schedule summary missing:\n%s", body)
	}
	if !strings.Contains(body, dialogue.ActionVoice) {
		t.Fatalf("availability flow must return to the menu:\n%s", body)
	}
}

func TestUpsertDoctorRejectsBadWindow(t *testing.T) {
	_, r := newTestBundle()
	payload, _ := json.Marshal(models.DoctorSchedule{
		Name:    "Dr. New",
		Windows: []models.WeeklyWindow{{Day: "blursday", Start: "09:00", End: "12:00"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/doctors", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid weekday must be rejected, status %d: %s", w.Code, w.Body.String())
	}
}

func TestUpsertDoctorNormalizesName(t *testing.T) {
	hb, r := newTestBundle()
	payload, _ := json.Marshal(models.DoctorSchedule{
		Name:    "Dr. New",
		Windows: []models.WeeklyWindow{{Day: "monday", Start: "09:00", End: "12:00"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/doctors", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["name"] != "dr._new" {
		t.Fatalf("name not normalized: %q", resp["name"])
	}
	if repo := hb.DoctorRepo.(*stubDoctorRepo); repo.upserts != 1 {
		t.Fatalf("expected one upsert, got %d", repo.upserts)
	}
}
