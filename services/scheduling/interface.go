package scheduling

import (
	"context"
	"strings"

	"voicedesk/models"
	"voicedesk/utils"
)

// Service answers slot availability questions and creates appointments
// against the external scheduling backend. Both calls are fallible and
// latency-bound; callers treat errors as collaborator failures.
type Service interface {
	IsTimeAvailable(ctx context.Context, doctor, timeText string) (bool, error)
	CreateAppointment(ctx context.Context, doctor, department string, guest models.GuestInfo, timeText string) (string, error)
}

// NormalizeDoctor converts a spoken doctor name to the storage key form:
// sanitized, lowercased, spaces replaced with underscores.
func NormalizeDoctor(name string) string {
	s := utils.SanitizeText(name)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, " ", "_")
}
