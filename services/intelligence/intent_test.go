package intelligence

import (
	"context"
	"errors"
	"testing"

	"voicedesk/services/dialogue"

	"go.uber.org/zap"
)

type stubGenerator struct {
	reply string
	err   error
}

func (s *stubGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	return s.reply, s.err
}

func TestClassifyUsesModelLabel(t *testing.T) {
	cases := map[string]dialogue.MenuAction{
		"book":         dialogue.MenuBook,
		" Cancel\n":    dialogue.MenuCancel,
		"reschedule":   dialogue.MenuReschedule,
		"availability": dialogue.MenuAvailability,
		"human":        dialogue.MenuHuman,
		"unknown":      dialogue.MenuUnknown,
	}
	for reply, want := range cases {
		c := NewIntentClassifier(&stubGenerator{reply: reply}, zap.NewNop())
		if got := c.Classify(context.Background(), "I'd like some help"); got != want {
			t.Errorf("model reply %q: got %v, want %v", reply, got, want)
		}
	}
}

func TestClassifyFallsBackToKeywordsOnModelFailure(t *testing.T) {
	c := NewIntentClassifier(&stubGenerator{err: errors.New("quota exceeded")}, zap.NewNop())

	cases := map[string]dialogue.MenuAction{
		"I want to cancel my appointment":        dialogue.MenuCancel,
		"can I book a visit with doctor Smith":   dialogue.MenuBook,
		"is doctor Patel available on friday":    dialogue.MenuAvailability,
		"let me talk to a real person":           dialogue.MenuHuman,
		"I need to change my appointment":        dialogue.MenuReschedule,
		"something else entirely":                dialogue.MenuUnknown,
	}
	for utterance, want := range cases {
		if got := c.Classify(context.Background(), utterance); got != want {
			t.Errorf("utterance %q: got %v, want %v", utterance, got, want)
		}
	}
}

func TestClassifyWithoutGeneratorUsesKeywords(t *testing.T) {
	c := NewIntentClassifier(nil, zap.NewNop())
	if got := c.Classify(context.Background(), "please book me in"); got != dialogue.MenuBook {
		t.Fatalf("got %v, want MenuBook", got)
	}
}

func TestClassifyEmptyUtterance(t *testing.T) {
	c := NewIntentClassifier(&stubGenerator{reply: "book"}, zap.NewNop())
	if got := c.Classify(context.Background(), "   "); got != dialogue.MenuUnknown {
		t.Fatalf("empty utterance must be unknown, got %v", got)
	}
}

func TestClassifyNonsenseModelReplyFallsBack(t *testing.T) {
	c := NewIntentClassifier(&stubGenerator{reply: "I think the caller wants to chat"}, zap.NewNop())
	if got := c.Classify(context.Background(), "cancel it please"); got != dialogue.MenuCancel {
		t.Fatalf("got %v, want MenuCancel via keyword fallback", got)
	}
}
