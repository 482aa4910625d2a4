// Package twiml builds the XML voice-response documents returned to the
// telephony provider after each webhook turn.
package twiml

import (
	"encoding/xml"
	"fmt"
)

// Response is the root voice-response document. Verbs are executed by the
// telephony provider in the order they appear.
type Response struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []any
}

// Play plays an audio file by URL.
type Play struct {
	XMLName xml.Name `xml:"Play"`
	URL     string   `xml:",chardata"`
}

// Say speaks text with the provider's built-in voice.
type Say struct {
	XMLName xml.Name `xml:"Say"`
	Voice   string   `xml:"voice,attr,omitempty"`
	Text    string   `xml:",chardata"`
}

// Pause waits silently for the given number of seconds.
type Pause struct {
	XMLName xml.Name `xml:"Pause"`
	Length  int      `xml:"length,attr,omitempty"`
}

// Gather collects speech or keypad input and posts it to Action.
type Gather struct {
	XMLName     xml.Name `xml:"Gather"`
	Input       string   `xml:"input,attr,omitempty"`
	NumDigits   int      `xml:"numDigits,attr,omitempty"`
	SpeechModel string   `xml:"speechModel,attr,omitempty"`
	Action      string   `xml:"action,attr,omitempty"`
	Method      string   `xml:"method,attr,omitempty"`
	Timeout     int      `xml:"timeout,attr,omitempty"`
	Verbs       []any
}

// Redirect transfers control of the call to another webhook.
type Redirect struct {
	XMLName xml.Name `xml:"Redirect"`
	Method  string   `xml:"method,attr,omitempty"`
	URL     string   `xml:",chardata"`
}

// Dial connects the caller to another phone number.
type Dial struct {
	XMLName xml.Name `xml:"Dial"`
	Number  string   `xml:",chardata"`
}

// Hangup ends the call.
type Hangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

// NewResponse returns an empty voice-response document.
func NewResponse() *Response {
	return &Response{}
}

// Append adds a verb to the end of the document and returns the document.
func (r *Response) Append(verb any) *Response {
	r.Verbs = append(r.Verbs, verb)
	return r
}

// Append adds a nested verb played before input collection starts.
func (g *Gather) Append(verb any) *Gather {
	g.Verbs = append(g.Verbs, verb)
	return g
}

// Render serializes the document with the XML header the provider expects.
func (r *Response) Render() (string, error) {
	body, err := xml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("twiml: failed to marshal response: %w", err)
	}
	return xml.Header + string(body), nil
}
