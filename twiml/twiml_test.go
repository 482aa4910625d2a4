package twiml

import (
	"strings"
	"testing"
)

func TestRenderGatherDocument(t *testing.T) {
	resp := NewResponse()
	g := &Gather{
		Input:       "speech",
		SpeechModel: "phone_call",
		Action:      "/capture-doctor-name",
		Method:      "POST",
		Timeout:     5,
	}
	g.Append(Say{Text: "Please say the name of the doctor."})
	resp.Append(g)
	resp.Append(Redirect{Method: "POST", URL: "/capture-doctor-name"})

	out, err := resp.Render()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`<?xml`,
		`<Response>`,
		`input="speech"`,
		`speechModel="phone_call"`,
		`action="/capture-doctor-name"`,
		`<Say>Please say the name of the doctor.</Say>`,
		`<Redirect method="POST">/capture-doctor-name</Redirect>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("document missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDigitGatherOmitsSpeechAttrs(t *testing.T) {
	resp := NewResponse()
	resp.Append(&Gather{Input: "dtmf", NumDigits: 1, Action: "/process-selection", Method: "POST"})

	out, err := resp.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `numDigits="1"`) {
		t.Errorf("missing numDigits attr:\n%s", out)
	}
	if strings.Contains(out, "speechModel") {
		t.Errorf("dtmf gather must not carry speech attrs:\n%s", out)
	}
}

func TestRenderTerminalVerbs(t *testing.T) {
	resp := NewResponse()
	resp.Append(Say{Text: "Connecting you to a human agent."})
	resp.Append(Dial{Number: "+15550001111"})
	resp.Append(Hangup{})

	out, err := resp.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `<Dial>+15550001111</Dial>`) {
		t.Errorf("missing dial verb:\n%s", out)
	}
	if !strings.Contains(out, `<Hangup>`) {
		t.Errorf("missing hangup verb:\n%s", out)
	}
}

func TestRenderPlayPreferredOverSay(t *testing.T) {
	resp := NewResponse()
	resp.Append(Play{URL: "https://cdn.example/prompt.mp3"})

	out, err := resp.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `<Play>https://cdn.example/prompt.mp3</Play>`) {
		t.Errorf("missing play verb:\n%s", out)
	}
}
