package llm

import (
	"errors"
	"fmt"
	"time"
)

// MalformedResponse means the reply could not be turned into the expected
// value: it was not JSON, or the JSON did not fit the expected shape.
type MalformedResponse struct {
	Raw string
	Err error
}

func (e *MalformedResponse) Error() string {
	return fmt.Sprintf("malformed LLM response: %v", e.Err)
}

func (e *MalformedResponse) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down, unreachable or timed out.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// IsUpstreamError reports whether err came from the completion service or
// from decoding its reply.
func IsUpstreamError(err error) bool {
	var (
		malformed   *MalformedResponse
		rateLimit   *ErrRateLimit
		unavailable *ErrProviderUnavailable
	)
	return errors.As(err, &malformed) || errors.As(err, &rateLimit) || errors.As(err, &unavailable)
}
