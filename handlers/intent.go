package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProcessIntentHandler classifies a spoken request instead of a keypad
// choice and routes it like a menu selection.
func (h *HandlerBundle) ProcessIntentHandler(c *gin.Context) {
	utterance := h.speechInput(c)
	action := h.Classifier.Classify(c.Request.Context(), utterance)
	h.Logger.Info("classified caller intent", zap.Int("action", int(action)))
	h.renderTurn(c, h.turnForMenuAction(c, action))
}
