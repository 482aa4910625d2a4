package dialogue

import "voicedesk/utils"

// MenuAction is the caller's choice from the DTMF main menu.
type MenuAction int

const (
	MenuUnknown MenuAction = iota
	MenuBook
	MenuCancel
	MenuReschedule
	MenuAvailability
	MenuHuman
)

// MenuPrompt is spoken on the greeting turn and repeated whenever the
// caller presses an unrecognized key.
const MenuPrompt = "Welcome to the clinic. " +
	"Press 1 to book an appointment. " +
	"Press 2 to cancel an appointment. " +
	"Press 3 to reschedule an appointment. " +
	"Press 4 to check doctor availability. " +
	"Press 5 to talk to a human agent."

// RouteDigit maps a keypad entry to a menu action. Anything outside the
// five advertised keys, including empty input, routes back to the menu
// without touching any session.
func RouteDigit(raw string) MenuAction {
	switch utils.SanitizeDigits(raw) {
	case "1":
		return MenuBook
	case "2":
		return MenuCancel
	case "3":
		return MenuReschedule
	case "4":
		return MenuAvailability
	case "5":
		return MenuHuman
	default:
		return MenuUnknown
	}
}

// Menu builds the greeting turn: the spoken menu plus a single-digit gather.
func Menu() *TurnResult {
	return &TurnResult{
		Prompts: []string{MenuPrompt},
		Gather:  &GatherSpec{Mode: "dtmf", Action: ActionSelection, NumDigits: 1},
	}
}
