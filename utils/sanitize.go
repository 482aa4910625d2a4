package utils

import (
	"net/url"
	"strings"
)

// SanitizeText strips control and markup characters from free-text input
// and trims surrounding whitespace. Empty input maps to empty output.
func SanitizeText(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '<', '>', ';', '{', '}':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// SanitizeDigits keeps only digit characters, for DTMF and keypad fields.
func SanitizeDigits(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizePhone normalizes a spoken or typed phone number: spaces and
// dashes are dropped, everything else passes through SanitizeText.
func SanitizePhone(s string) string {
	s = SanitizeText(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

// SanitizeURL validates that a link is a plain http(s) URL and rebuilds it
// from its parsed parts. Returns "" for anything unsafe.
func SanitizeURL(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return ""
	}
	safe := url.URL{Scheme: parsed.Scheme, Host: parsed.Host, Path: parsed.Path}
	return safe.String()
}
