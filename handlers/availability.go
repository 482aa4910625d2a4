package handlers

import (
	"errors"
	"fmt"

	"voicedesk/services/dialogue"
	"voicedesk/services/scheduling"
	"voicedesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckAvailabilityHandler opens the availability flow by asking for a
// doctor's name.
func (h *HandlerBundle) CheckAvailabilityHandler(c *gin.Context) {
	h.renderTurn(c, &dialogue.TurnResult{
		Prompts: []string{"Please say the name of the doctor you want to check availability for."},
		Gather:  &dialogue.GatherSpec{Mode: "speech", Action: dialogue.ActionCaptureAvailDoc},
	})
}

// CaptureAvailabilityDoctorHandler reads back the doctor's weekly schedule
// and returns to the main menu.
func (h *HandlerBundle) CaptureAvailabilityDoctorHandler(c *gin.Context) {
	doctor := utils.SanitizeText(h.speechInput(c))
	if doctor == "" {
		h.renderTurn(c, &dialogue.TurnResult{
			Prompts: []string{"I didn't catch a doctor's name. Please say it again."},
			Gather:  &dialogue.GatherSpec{Mode: "speech", Action: dialogue.ActionCaptureAvailDoc},
		})
		return
	}

	summary, err := h.Local.Describe(c.Request.Context(), doctor)
	switch {
	case errors.Is(err, scheduling.ErrUnknownDoctor):
		h.renderTurn(c, &dialogue.TurnResult{
			Prompts:    []string{fmt.Sprintf("I couldn't find Doctor %s on our schedule.", doctor)},
			RedirectTo: dialogue.ActionVoice,
		})
	case err != nil:
		h.Logger.Error("availability lookup failed", zap.String("doctor", doctor), zap.Error(err))
		h.renderTurn(c, &dialogue.TurnResult{
			Prompts:    []string{"An error occurred. Please try again later."},
			RedirectTo: dialogue.ActionVoice,
		})
	default:
		h.renderTurn(c, &dialogue.TurnResult{
			Prompts:    []string{fmt.Sprintf("Doctor %s %s.", doctor, summary)},
			RedirectTo: dialogue.ActionVoice,
		})
	}
}
