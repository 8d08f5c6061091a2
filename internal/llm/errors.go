package llm

import (
	"fmt"
	"time"
)

// ConnectionError means the LLM service could not be reached at all.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e ConnectionError) Error() string {
	return fmt.Sprintf("cannot connect to LLM at %v: %v", e.Endpoint, e.Err)
}

func (e ConnectionError) Unwrap() error { return e.Err }

// TimeoutError means the request did not complete within the configured
// timeout.
type TimeoutError struct {
	Timeout time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("LLM request timed out after %v seconds", int(e.Timeout.Seconds()))
}

// ResponseError means the LLM service answered, but with a non-2xx status
// or a payload which doesn't follow the chat contract.
type ResponseError struct {
	Detail     string
	StatusCode int
}

func (e ResponseError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("LLM responded with HTTP %v: %v", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("invalid LLM response: %v", e.Detail)
}
