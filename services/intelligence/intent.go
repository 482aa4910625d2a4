package intelligence

import (
	"context"
	"fmt"
	"strings"

	"voicedesk/services/dialogue"
	"voicedesk/utils"

	"go.uber.org/zap"
)

const intentPrompt = `You route calls for a medical clinic. Classify the caller's request
into exactly one word from this list and output nothing else:
book, cancel, reschedule, availability, human, unknown.

Caller said: %q`

// IntentClassifier maps a caller utterance to a main-menu action. The
// model call is advisory; keyword matching covers model failures so the
// caller is never stranded.
type IntentClassifier struct {
	Generator Generator
	Logger    *zap.Logger
}

func NewIntentClassifier(gen Generator, logger *zap.Logger) *IntentClassifier {
	return &IntentClassifier{Generator: gen, Logger: logger}
}

// Classify returns the menu action for an utterance. Unclassifiable input
// maps to MenuUnknown, which replays the menu.
func (c *IntentClassifier) Classify(ctx context.Context, utterance string) dialogue.MenuAction {
	utterance = utils.SanitizeText(utterance)
	if utterance == "" {
		return dialogue.MenuUnknown
	}

	if c.Generator != nil {
		reply, err := c.Generator.GenerateContent(ctx, fmt.Sprintf(intentPrompt, utterance))
		if err != nil {
			c.Logger.Warn("intent model call failed, using keyword fallback", zap.Error(err))
		} else if action, ok := actionForLabel(reply); ok {
			return action
		}
	}
	return keywordIntent(utterance)
}

func actionForLabel(label string) (dialogue.MenuAction, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "book":
		return dialogue.MenuBook, true
	case "cancel":
		return dialogue.MenuCancel, true
	case "reschedule":
		return dialogue.MenuReschedule, true
	case "availability":
		return dialogue.MenuAvailability, true
	case "human":
		return dialogue.MenuHuman, true
	case "unknown":
		return dialogue.MenuUnknown, true
	default:
		return dialogue.MenuUnknown, false
	}
}

func keywordIntent(utterance string) dialogue.MenuAction {
	lower := strings.ToLower(utterance)
	switch {
	case strings.Contains(lower, "cancel"):
		return dialogue.MenuCancel
	case strings.Contains(lower, "reschedule") || strings.Contains(lower, "change"):
		return dialogue.MenuReschedule
	case strings.Contains(lower, "available") || strings.Contains(lower, "availability") || strings.Contains(lower, "open"):
		return dialogue.MenuAvailability
	case strings.Contains(lower, "human") || strings.Contains(lower, "agent") || strings.Contains(lower, "person"):
		return dialogue.MenuHuman
	case strings.Contains(lower, "book") || strings.Contains(lower, "appointment") || strings.Contains(lower, "schedule"):
		return dialogue.MenuBook
	default:
		return dialogue.MenuUnknown
	}
}
