package models

import (
	"fmt"
	"regexp"
	"strings"
)

// E164Pattern matches an international phone number: optional leading plus,
// first digit 1-9, then 1 to 14 further digits.
var E164Pattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// BookingRequest is the ephemeral record derived from a completed call
// session and handed to the finalizer. It is never persisted.
type BookingRequest struct {
	Doctor   string `json:"doctor"`
	TimeText string `json:"timeText"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Purpose  string `json:"purpose"`
}

// GuestInfo is the schema-checked projection of a BookingRequest.
type GuestInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Purpose string `json:"purpose"`
}

// Validate checks the guest record's field bounds and shapes: name 2..100,
// a plausible email, an E.164-style phone and purpose 5..200.
func (g GuestInfo) Validate() error {
	if n := len(g.Name); n < 2 || n > 100 {
		return fmt.Errorf("guest name must be 2-100 characters, got %d", n)
	}
	if !emailPattern.MatchString(g.Email) {
		return fmt.Errorf("guest email %q is not a valid address", g.Email)
	}
	if !E164Pattern.MatchString(g.Phone) {
		return fmt.Errorf("guest phone does not match the expected number format")
	}
	if n := len(g.Purpose); n < 5 || n > 200 {
		return fmt.Errorf("guest purpose must be 5-200 characters, got %d", n)
	}
	return nil
}

// Guest derives the validated projection of a booking request. The email is
// synthesized from the caller's name when no address was captured on the call.
func (r BookingRequest) Guest() GuestInfo {
	email := r.Email
	if email == "" {
		email = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(r.Name), " ", ".")) + "@example.com"
	}
	purpose := r.Purpose
	if purpose == "" {
		purpose = fmt.Sprintf("Appointment with Dr. %s at %s", r.Doctor, r.TimeText)
	}
	return GuestInfo{
		Name:    r.Name,
		Email:   email,
		Phone:   r.Phone,
		Purpose: purpose,
	}
}
