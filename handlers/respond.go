package handlers

import (
	"net/http"

	"voicedesk/services/dialogue"
	"voicedesk/twiml"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const speechTimeoutSeconds = 5

// speak appends a prompt to the given verb list, preferring rendered audio
// and falling back to provider text-to-speech when rendering fails.
func (h *HandlerBundle) speak(c *gin.Context, add func(any), text string) {
	if h.Renderer != nil {
		if url, err := h.Renderer.AudioURL(c.Request.Context(), text); err == nil {
			add(twiml.Play{URL: url})
			return
		} else {
			h.Logger.Warn("prompt audio render failed, using plain speech", zap.Error(err))
		}
	}
	add(twiml.Say{Text: text})
}

// renderTurn converts a dialogue outcome into the XML voice document.
// Prompts attach inside the gather when one is requested so the caller can
// barge in, matching how each booking step collects speech.
func (h *HandlerBundle) renderTurn(c *gin.Context, turn *dialogue.TurnResult) {
	resp := twiml.NewResponse()

	if turn.Gather != nil {
		g := &twiml.Gather{
			Action:  turn.Gather.Action,
			Method:  "POST",
			Timeout: speechTimeoutSeconds,
		}
		switch turn.Gather.Mode {
		case "dtmf":
			g.Input = "dtmf"
			g.NumDigits = turn.Gather.NumDigits
		default:
			g.Input = "speech"
			g.SpeechModel = "phone_call"
		}
		for _, p := range turn.Prompts {
			h.speak(c, func(v any) { g.Append(v) }, p)
		}
		resp.Append(g)
		// Silence falls through the gather; repeat the turn.
		resp.Append(twiml.Redirect{Method: "POST", URL: turn.Gather.Action})
	} else {
		for _, p := range turn.Prompts {
			h.speak(c, func(v any) { resp.Append(v) }, p)
		}
	}

	if turn.RedirectTo != "" {
		resp.Append(twiml.Redirect{Method: "POST", URL: turn.RedirectTo})
	}
	if turn.Dial != "" {
		resp.Append(twiml.Dial{Number: turn.Dial})
	}
	if turn.Hangup {
		resp.Append(twiml.Hangup{})
	}

	h.writeTwiML(c, resp)
}

func (h *HandlerBundle) writeTwiML(c *gin.Context, resp *twiml.Response) {
	body, err := resp.Render()
	if err != nil {
		h.Logger.Error("failed to render voice response", zap.Error(err))
		c.String(http.StatusInternalServerError, "render failure")
		return
	}
	c.Data(http.StatusOK, "application/xml", []byte(body))
}
