// Package handlers exposes the webhook and admin HTTP endpoints. Webhook
// handlers translate provider form posts into dialogue turns and render
// the resulting voice documents; admin handlers speak JSON.
package handlers

import (
	doctorRepoPkg "voicedesk/database/repository/doctor"
	recordsRepoPkg "voicedesk/database/repository/records"
	"voicedesk/services/dialogue"
	"voicedesk/services/intelligence"
	"voicedesk/services/notification"
	"voicedesk/services/scheduling"
	"voicedesk/services/transcribe"
	"voicedesk/services/voice"

	"go.uber.org/zap"
)

// HandlerBundle groups every endpoint's dependencies into one struct
// wired once in main.
type HandlerBundle struct {
	Machine     *dialogue.Machine
	Renderer    voice.Renderer
	Transcriber transcribe.Transcriber
	Classifier  *intelligence.IntentClassifier
	Local       *scheduling.LocalAvailability
	Escalation  notification.EscalationNotifier

	DoctorRepo  doctorRepoPkg.DoctorScheduleRepository
	RecordsRepo recordsRepoPkg.AppointmentRecordRepository

	HumanSupportNumber string
	Logger             *zap.Logger
}
