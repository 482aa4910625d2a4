package dialogue

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a turn references a call identifier
// with no stored session: the turn arrived out of order or the session
// expired. Callers recover by restarting the booking dialogue.
var ErrSessionNotFound = errors.New("call session not found")

// ValidationError marks recoverable bad input for the current step. The
// machine re-enters the same step and re-prompts; nothing is committed.
type ValidationError struct {
	Step    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s input: %s", e.Step, e.Message)
}

func NewValidationError(step, msg string) error {
	return &ValidationError{Step: step, Message: msg}
}

// IsValidation reports whether err is a recoverable input failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// CollaboratorError marks a hard failure of an external collaborator
// (scheduling backend, notifier). The caller is told to try again later;
// the session is left intact.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// IsCollaborator reports whether err is an external-collaborator failure.
func IsCollaborator(err error) bool {
	var ce *CollaboratorError
	return errors.As(err, &ce)
}
