// Package llm talks to an OpenAI-compatible text completion service and turns
// its replies into typed values.
package llm

import (
	"context"
	"errors"
	"time"
)

// SystemPrompt is sent ahead of every user prompt.
const SystemPrompt = "You're a learning assistant for DSA/DAA topics."

// Completer sends one prompt and returns the raw text of the first choice.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	ModelID() string
}

// Config holds the settings of an OpenRouter style provider.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// Referer and Title are sent as the HTTP-Referer and X-Title headers.
	Referer string
	Title   string
	Timeout time.Duration
}

// Unavailable is a Completer for when no provider is configured. Every call
// fails with ErrProviderUnavailable.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Complete(context.Context, string) (string, error) {
	return "", &ErrProviderUnavailable{Err: errors.New(u.Reason)}
}

func (u Unavailable) ModelID() string { return "" }
