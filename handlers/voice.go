package handlers

import (
	"voicedesk/services/dialogue"
	"voicedesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VoiceHandler answers the call with the main menu.
func (h *HandlerBundle) VoiceHandler(c *gin.Context) {
	h.Logger.Info("incoming call",
		zap.String("callId", utils.SanitizeText(c.PostForm("CallSid"))),
		zap.String("from", utils.SanitizePhone(c.PostForm("From"))))
	h.renderTurn(c, dialogue.Menu())
}

// ProcessSelectionHandler routes the caller's keypad choice. Unrecognized
// keys replay the menu without touching any session.
func (h *HandlerBundle) ProcessSelectionHandler(c *gin.Context) {
	digits := c.PostForm("Digits")
	action := dialogue.RouteDigit(digits)
	h.Logger.Info("menu selection", zap.String("digits", utils.SanitizeDigits(digits)), zap.Int("action", int(action)))
	h.renderTurn(c, h.turnForMenuAction(c, action))
}

// turnForMenuAction maps a menu action to its opening turn.
func (h *HandlerBundle) turnForMenuAction(c *gin.Context, action dialogue.MenuAction) *dialogue.TurnResult {
	switch action {
	case dialogue.MenuBook:
		return h.Machine.Start()
	case dialogue.MenuCancel:
		return h.handoffTurn(c, "To cancel an appointment, I'll connect you to our staff.")
	case dialogue.MenuReschedule:
		return h.handoffTurn(c, "To reschedule an appointment, I'll connect you to our staff.")
	case dialogue.MenuAvailability:
		return &dialogue.TurnResult{
			Prompts: []string{"Please say the name of the doctor you want to check availability for."},
			Gather:  &dialogue.GatherSpec{Mode: "speech", Action: dialogue.ActionCaptureAvailDoc},
		}
	case dialogue.MenuHuman:
		return h.handoffTurn(c, "Connecting you to a human agent. Please hold.")
	default:
		return dialogue.Menu()
	}
}

// handoffTurn dials the staff line and alerts the on-call device. Without a
// configured number the caller is asked to call back.
func (h *HandlerBundle) handoffTurn(c *gin.Context, prompt string) *dialogue.TurnResult {
	if h.HumanSupportNumber == "" {
		return &dialogue.TurnResult{
			Prompts: []string{"Our staff line is unavailable right now. Please call back later."},
			Hangup:  true,
		}
	}
	if h.Escalation != nil {
		callID := utils.SanitizeText(c.PostForm("CallSid"))
		from := utils.SanitizePhone(c.PostForm("From"))
		if err := h.Escalation.NotifyEscalation(c.Request.Context(), callID, from); err != nil {
			h.Logger.Warn("failed to notify staff of escalation", zap.Error(err))
		}
	}
	return &dialogue.TurnResult{
		Prompts: []string{prompt},
		Dial:    h.HumanSupportNumber,
	}
}
