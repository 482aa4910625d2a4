package handlers

import (
	"voicedesk/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookAppointmentHandler opens the booking dialogue.
func (h *HandlerBundle) BookAppointmentHandler(c *gin.Context) {
	h.renderTurn(c, h.Machine.Start())
}

// CaptureDoctorNameHandler records the requested doctor and asks for a time.
func (h *HandlerBundle) CaptureDoctorNameHandler(c *gin.Context) {
	h.advance(c, models.StepDoctor)
}

// CaptureAppointmentTimeHandler checks the requested slot and asks for the
// caller's name.
func (h *HandlerBundle) CaptureAppointmentTimeHandler(c *gin.Context) {
	h.advance(c, models.StepTime)
}

// CaptureUserNameHandler records the caller's name and asks for a phone
// number.
func (h *HandlerBundle) CaptureUserNameHandler(c *gin.Context) {
	h.advance(c, models.StepName)
}

// CaptureUserPhoneHandler records the callback number and asks for an
// address.
func (h *HandlerBundle) CaptureUserPhoneHandler(c *gin.Context) {
	h.advance(c, models.StepPhone)
}

// CaptureUserAddressHandler records the address and finalizes the booking.
func (h *HandlerBundle) CaptureUserAddressHandler(c *gin.Context) {
	h.advance(c, models.StepAddress)
}

func (h *HandlerBundle) advance(c *gin.Context, step models.DialogueStep) {
	callID := c.PostForm("CallSid")
	input := h.speechInput(c)

	turn, err := h.Machine.Advance(c.Request.Context(), step, callID, input)
	if err != nil {
		h.Logger.Error("dialogue turn failed", zap.String("step", step.String()), zap.Error(err))
	}
	h.renderTurn(c, turn)
}

// speechInput returns the caller's utterance for this turn. Providers post
// a SpeechResult for speech gathers; when only a recording URL arrives the
// transcriber recovers the text.
func (h *HandlerBundle) speechInput(c *gin.Context) string {
	if speech := c.PostForm("SpeechResult"); speech != "" {
		return speech
	}
	recordingURL := c.PostForm("RecordingUrl")
	if recordingURL == "" || h.Transcriber == nil {
		return ""
	}
	text, err := h.Transcriber.TranscribeRecording(c.Request.Context(), recordingURL, c.DefaultPostForm("Language", "en-US"))
	if err != nil {
		h.Logger.Warn("recording transcription failed", zap.Error(err))
		return ""
	}
	return text
}
