package scheduling

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	doctorRepo "voicedesk/database/repository/doctor"
	"voicedesk/models"

	"go.uber.org/zap"
)

// ErrUnparseableTime marks a requested time the backend cannot be queried
// with. Callers treat it as bad caller input rather than a backend failure.
var ErrUnparseableTime = errors.New("unparseable requested time")

// ErrUnknownDoctor is returned when no schedule is registered for a doctor.
var ErrUnknownDoctor = errors.New("unknown doctor")

// CalendlyService implements Service against a Calendly-style REST API:
// availability via scheduled event listings, creation via single-use
// scheduling links.
type CalendlyService struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Doctors    doctorRepo.DoctorScheduleRepository
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewCalendlyService wires a CalendlyService with a bounded-latency client.
func NewCalendlyService(baseURL, token string, doctors doctorRepo.DoctorScheduleRepository, logger *zap.Logger) *CalendlyService {
	return &CalendlyService{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Doctors:    doctors,
		Logger:     logger,
		Now:        time.Now,
	}
}

type scheduledEventsResponse struct {
	Collection []json.RawMessage `json:"collection"`
}

type schedulingLinkResponse struct {
	Resource struct {
		BookingURL string `json:"booking_url"`
	} `json:"resource"`
}

// IsTimeAvailable reports whether the doctor's slot at the requested time is
// free. A time expression that cannot be parsed yields ErrUnparseableTime.
func (s *CalendlyService) IsTimeAvailable(ctx context.Context, doctor, timeText string) (bool, error) {
	name := NormalizeDoctor(doctor)
	if name == "" {
		return false, fmt.Errorf("%w: empty doctor name", ErrUnknownDoctor)
	}

	start, err := ParseTimeText(timeText, s.Now())
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnparseableTime, err)
	}
	end := start.Add(SlotDuration)

	schedule, err := s.Doctors.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			return false, fmt.Errorf("%w: %s", ErrUnknownDoctor, name)
		}
		return false, fmt.Errorf("failed to resolve doctor %s: %w", name, err)
	}

	query := url.Values{}
	query.Set("event_type", s.BaseURL+"/event_types/"+schedule.EventTypeID)
	query.Set("min_start_time", start.Format(time.RFC3339))
	query.Set("max_start_time", end.Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/scheduled_events?"+query.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("failed to build availability request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("availability request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("availability check returned status %d: %s", resp.StatusCode, body)
	}

	var events scheduledEventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return false, fmt.Errorf("failed to decode availability response: %w", err)
	}

	available := len(events.Collection) == 0
	s.Logger.Debug("checked slot availability",
		zap.String("doctor", name),
		zap.String("timeText", timeText),
		zap.Bool("available", available),
	)
	return available, nil
}

// CreateAppointment books the slot by minting a single-use scheduling link
// for the validated guest. The backend re-checks availability on its side.
func (s *CalendlyService) CreateAppointment(ctx context.Context, doctor, department string, guest models.GuestInfo, timeText string) (string, error) {
	if err := guest.Validate(); err != nil {
		return "", fmt.Errorf("guest validation failed: %w", err)
	}

	name := NormalizeDoctor(doctor)
	schedule, err := s.Doctors.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			return "", fmt.Errorf("%w: %s", ErrUnknownDoctor, name)
		}
		return "", fmt.Errorf("failed to resolve doctor %s: %w", name, err)
	}

	start, err := ParseTimeText(timeText, s.Now())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnparseableTime, err)
	}
	end := start.Add(SlotDuration)

	payload := map[string]any{
		"owner":           s.BaseURL + "/event_types/" + schedule.EventTypeID,
		"owner_type":      "EventType",
		"max_event_count": 1,
		"start_time":      start.Format(time.RFC3339),
		"end_time":        end.Format(time.RFC3339),
		"invitees": []map[string]string{
			{"email": guest.Email, "name": guest.Name},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal scheduling link payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/scheduling_links", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build scheduling link request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("scheduling link request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("appointment creation returned status %d: %s", resp.StatusCode, respBody)
	}

	var link schedulingLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return "", fmt.Errorf("failed to decode scheduling link response: %w", err)
	}
	if link.Resource.BookingURL == "" {
		return "", fmt.Errorf("scheduling backend returned no booking link")
	}

	s.Logger.Info("created appointment",
		zap.String("doctor", name),
		zap.String("department", department),
		zap.String("timeText", timeText),
	)
	return link.Resource.BookingURL, nil
}
