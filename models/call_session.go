package models

import "time"

// DialogueStep identifies how far a call session has progressed through the
// booking conversation. Fields are populated strictly in step order.
type DialogueStep int

const (
	StepDoctor DialogueStep = iota
	StepTime
	StepName
	StepPhone
	StepAddress
	StepCompleted
)

func (s DialogueStep) String() string {
	switch s {
	case StepDoctor:
		return "doctor"
	case StepTime:
		return "time"
	case StepName:
		return "name"
	case StepPhone:
		return "phone"
	case StepAddress:
		return "address"
	case StepCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// CallSession holds the booking dialogue's accumulated state for one phone
// call, keyed by the telephony provider's call identifier.
type CallSession struct {
	CallID    string    `json:"callId"`
	Doctor    string    `json:"doctor,omitempty"`
	TimeText  string    `json:"timeText,omitempty"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NextStep reports the first dialogue step whose field is still unset.
// Step order is fixed: doctor, time, name, phone, address.
func (s *CallSession) NextStep() DialogueStep {
	switch {
	case s.Doctor == "":
		return StepDoctor
	case s.TimeText == "":
		return StepTime
	case s.Name == "":
		return StepName
	case s.Phone == "":
		return StepPhone
	case s.Address == "":
		return StepAddress
	default:
		return StepCompleted
	}
}
