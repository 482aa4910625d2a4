// Package dialogue implements the call-session conversation state machine:
// it turns the stateless sequence of webhook turns into an ordered booking
// dialogue with per-call memory, validation and idempotent completion.
package dialogue

import (
	"context"
	"errors"
	"fmt"

	"voicedesk/models"
	"voicedesk/services/scheduling"
	"voicedesk/utils"

	"go.uber.org/zap"
)

// Webhook actions the machine directs the telephony provider to. The routes
// package mounts handlers on the same paths.
const (
	ActionVoice             = "/voice"
	ActionSelection         = "/process-selection"
	ActionIntent            = "/process-intent"
	ActionBook              = "/book-appointment"
	ActionCaptureDoctor     = "/capture-doctor-name"
	ActionCaptureTime       = "/capture-appointment-time"
	ActionCaptureName       = "/capture-user-name"
	ActionCapturePhone      = "/capture-user-phone"
	ActionCaptureAddress    = "/capture-user-address"
	ActionCheckAvailability = "/check-availability"
	ActionCaptureAvailDoc   = "/capture-availability-doctor"
)

// GatherSpec tells the handler what input to collect next and where the
// provider should post it.
type GatherSpec struct {
	Mode      string // "speech" or "dtmf"
	Action    string
	NumDigits int
}

// TurnResult is the transport-neutral outcome of one dialogue turn.
// Handlers render it into a voice response document.
type TurnResult struct {
	Prompts    []string
	Gather     *GatherSpec
	RedirectTo string
	Dial       string
	Hangup     bool
	BookingURL string
}

func speechGather(action string) *GatherSpec {
	return &GatherSpec{Mode: "speech", Action: action}
}

// Machine drives the booking dialogue. It is the sole owner of call
// sessions; no other component mutates them.
type Machine struct {
	Store     SessionStore
	Oracle    scheduling.Service
	Finalizer *Finalizer
	Logger    *zap.Logger
}

func NewMachine(store SessionStore, oracle scheduling.Service, finalizer *Finalizer, logger *zap.Logger) *Machine {
	return &Machine{Store: store, Oracle: oracle, Finalizer: finalizer, Logger: logger}
}

// stepSpec is one row of the transition table: how to clean a step's input,
// which session field it fills, what to say on success and where the next
// gather posts.
type stepSpec struct {
	name        string
	sanitize    func(string) string
	assign      func(*models.CallSession, string)
	gatherSelf  string
	gatherNext  string
	emptyPrompt string
	success     func(sess *models.CallSession, value string) []string
}

var steps = map[models.DialogueStep]stepSpec{
	models.StepDoctor: {
		name:        "doctor",
		sanitize:    utils.SanitizeText,
		assign:      func(s *models.CallSession, v string) { s.Doctor = v },
		gatherSelf:  ActionCaptureDoctor,
		gatherNext:  ActionCaptureTime,
		emptyPrompt: "No doctor name provided. Please say the name of the doctor you want to see.",
		success: func(_ *models.CallSession, v string) []string {
			return []string{
				fmt.Sprintf("Great. You said Doctor %s.", v),
				"Please say the date and time you'd like to book. For example, say Monday at 2 PM.",
			}
		},
	},
	models.StepTime: {
		name:        "time",
		sanitize:    utils.SanitizeText,
		assign:      func(s *models.CallSession, v string) { s.TimeText = v },
		gatherSelf:  ActionCaptureTime,
		gatherNext:  ActionCaptureName,
		emptyPrompt: "I didn't catch a time. Please say the date and time you'd like to book.",
		success: func(sess *models.CallSession, v string) []string {
			return []string{
				fmt.Sprintf("Dr. %s is available at %s.", sess.Doctor, v),
				"Please say your full name.",
			}
		},
	},
	models.StepName: {
		name:        "name",
		sanitize:    utils.SanitizeText,
		assign:      func(s *models.CallSession, v string) { s.Name = v },
		gatherSelf:  ActionCaptureName,
		gatherNext:  ActionCapturePhone,
		emptyPrompt: "I didn't catch your name. Please say your full name.",
		success: func(_ *models.CallSession, _ string) []string {
			return []string{"Thanks. Now say your mobile number digit by digit."}
		},
	},
	models.StepPhone: {
		name:        "phone",
		sanitize:    utils.SanitizePhone,
		assign:      func(s *models.CallSession, v string) { s.Phone = v },
		gatherSelf:  ActionCapturePhone,
		gatherNext:  ActionCaptureAddress,
		emptyPrompt: "I didn't catch a valid phone number. Please say your mobile number digit by digit.",
		success: func(_ *models.CallSession, _ string) []string {
			return []string{"Please say your address."}
		},
	},
	models.StepAddress: {
		name:        "address",
		sanitize:    utils.SanitizeText,
		assign:      func(s *models.CallSession, v string) { s.Address = v },
		gatherSelf:  ActionCaptureAddress,
		emptyPrompt: "I didn't catch your address. Please say your address.",
	},
}

// Start opens the booking dialogue: the prompt for the first step.
func (m *Machine) Start() *TurnResult {
	return &TurnResult{
		Prompts: []string{"Please say the name of the doctor you want to book an appointment with after the beep."},
		Gather:  speechGather(ActionCaptureDoctor),
	}
}

// Advance processes one sanitized turn for the given step. The returned
// TurnResult is always usable; the error, when set, carries diagnostic
// context for logging.
func (m *Machine) Advance(ctx context.Context, step models.DialogueStep, callID, rawInput string) (*TurnResult, error) {
	spec, ok := steps[step]
	if !ok {
		return m.restart("Something went wrong. Let's start over."), fmt.Errorf("no spec for step %v", step)
	}

	callID = utils.SanitizeText(callID)
	if callID == "" {
		return &TurnResult{
			Prompts:    []string{"An error occurred. Please try again later."},
			RedirectTo: ActionVoice,
		}, fmt.Errorf("missing call identifier on %s turn", spec.name)
	}

	logger := m.Logger.With(zap.String("callId", callID), zap.String("step", spec.name))

	value := spec.sanitize(rawInput)
	if value == "" {
		logger.Warn("empty step input")
		return &TurnResult{
			Prompts: []string{spec.emptyPrompt},
			Gather:  speechGather(spec.gatherSelf),
		}, nil
	}

	// All steps after the first require an existing session; its absence
	// means the turn is out of order or the session expired.
	create := step == models.StepDoctor
	var sess *models.CallSession
	if !create {
		var err error
		sess, err = m.Store.Get(ctx, callID)
		if errors.Is(err, ErrSessionNotFound) {
			logger.Warn("turn for unknown session")
			return m.restart("Sorry, I lost track of your booking. Let's start over."), nil
		}
		if err != nil {
			logger.Error("session lookup failed", zap.Error(err))
			return m.tryLater(), &CollaboratorError{Op: "session lookup", Err: err}
		}
		if next := sess.NextStep(); next < step {
			logger.Warn("out-of-order turn", zap.String("expected", next.String()))
			resume := steps[next]
			return &TurnResult{
				Prompts: []string{"Let's pick up where we left off. " + resume.emptyPrompt},
				Gather:  speechGather(resume.gatherSelf),
			}, nil
		}
	}

	// Step-specific validation before anything is committed.
	switch step {
	case models.StepTime:
		if result, err := m.checkSlot(ctx, logger, sess, value); result != nil {
			return result, err
		}
	case models.StepPhone:
		if !models.E164Pattern.MatchString(value) {
			logger.Warn("invalid phone number shape", zap.String("value", value))
			return &TurnResult{
				Prompts: []string{spec.emptyPrompt},
				Gather:  speechGather(spec.gatherSelf),
			}, nil
		}
	}

	sess, err := m.Store.Update(ctx, callID, create, func(s *models.CallSession) error {
		spec.assign(s, value)
		return nil
	})
	if err != nil {
		logger.Error("session update failed", zap.Error(err))
		return m.tryLater(), &CollaboratorError{Op: "session update", Err: err}
	}
	logger.Info("captured step value", zap.String("value", value))

	if step == models.StepAddress {
		return m.finalize(ctx, logger, sess)
	}

	return &TurnResult{
		Prompts: spec.success(sess, value),
		Gather:  speechGather(spec.gatherNext),
	}, nil
}

// checkSlot consults the availability oracle for the time step. A nil result
// means the slot is free and the caller may commit.
func (m *Machine) checkSlot(ctx context.Context, logger *zap.Logger, sess *models.CallSession, timeText string) (*TurnResult, error) {
	available, err := m.Oracle.IsTimeAvailable(ctx, sess.Doctor, timeText)
	switch {
	case errors.Is(err, scheduling.ErrUnparseableTime):
		logger.Warn("unparseable requested time", zap.String("value", timeText))
		return &TurnResult{
			Prompts: []string{"I couldn't understand that time. Please say something like Monday at 2 PM."},
			Gather:  speechGather(ActionCaptureTime),
		}, nil
	case errors.Is(err, scheduling.ErrUnknownDoctor):
		logger.Warn("unknown doctor on time step", zap.String("doctor", sess.Doctor))
		return &TurnResult{
			Prompts: []string{fmt.Sprintf("I couldn't find Doctor %s. Please say the doctor's name again.", sess.Doctor)},
			Gather:  speechGather(ActionCaptureDoctor),
		}, nil
	case err != nil:
		logger.Error("availability check failed", zap.Error(err))
		return m.tryLater(), &CollaboratorError{Op: "availability check", Err: err}
	case !available:
		logger.Info("slot unavailable", zap.String("doctor", sess.Doctor), zap.String("value", timeText))
		return &TurnResult{
			Prompts: []string{
				fmt.Sprintf("I'm sorry, Dr. %s is not available at %s.", sess.Doctor, timeText),
				"Please say a different date and time.",
			},
			Gather: speechGather(ActionCaptureTime),
		}, nil
	}
	return nil, nil
}

// finalize hands the completed session to the finalizer and translates its
// outcome into the terminal prompts.
func (m *Machine) finalize(ctx context.Context, logger *zap.Logger, sess *models.CallSession) (*TurnResult, error) {
	outcome, err := m.Finalizer.Finalize(ctx, sess)
	switch {
	case err == nil:
		return &TurnResult{
			Prompts: []string{
				"Confirming your booking details.",
				fmt.Sprintf("You want to book with Doctor %s at %s.", sess.Doctor, sess.TimeText),
				fmt.Sprintf("Your name is %s, phone %s, address %s.", sess.Name, sess.Phone, sess.Address),
				"Your appointment has been successfully booked. A confirmation message has been sent to your phone.",
			},
			Hangup:     true,
			BookingURL: outcome.BookingURL,
		}, nil
	case IsValidation(err):
		logger.Warn("finalize validation failed", zap.Error(err))
		return &TurnResult{
			Prompts: []string{"Some of your details didn't check out. Let's try again. Please say your full name."},
			Gather:  speechGather(ActionCaptureName),
		}, nil
	default:
		logger.Error("finalize failed", zap.Error(err))
		return &TurnResult{
			Prompts: []string{
				"We couldn't complete your booking right now.",
				"Your details are saved. Please say your address once more to retry.",
			},
			Gather: speechGather(ActionCaptureAddress),
		}, err
	}
}

func (m *Machine) restart(prompt string) *TurnResult {
	return &TurnResult{
		Prompts:    []string{prompt},
		RedirectTo: ActionBook,
	}
}

func (m *Machine) tryLater() *TurnResult {
	return &TurnResult{
		Prompts:    []string{"An error occurred. Please try again later."},
		RedirectTo: ActionVoice,
	}
}
