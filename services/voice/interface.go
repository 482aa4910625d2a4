// Package voice renders spoken prompts to hosted audio. Prompts are
// synthesized once, uploaded to the CDN, and served from cache on every
// later turn that speaks the same text.
package voice

import "context"

// Renderer converts prompt text to a publicly playable audio URL.
// Callers fall back to plain text-to-speech markup when it fails.
type Renderer interface {
	AudioURL(ctx context.Context, text string) (string, error)
}
