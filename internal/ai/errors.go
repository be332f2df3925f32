package ai

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey means no OpenRouter credential is configured; no network
// call was attempted.
var ErrMissingAPIKey = errors.New("openrouter api key is not configured")

// ErrMalformedResponse means the endpoint answered without any completion
// choice.
var ErrMalformedResponse = errors.New("completion response has no choices")

// APIError is an HTTP-level failure from the completion endpoint, carrying
// the status code and, when present, the upstream error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}
