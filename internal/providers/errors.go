package providers

import (
	"errors"
	"fmt"
	"time"
)

// NotFoundError signals that a team ID is unknown to the roster source.
// It is fatal to the current editing view.
type NotFoundError struct {
	TeamID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("team %q not found", e.TeamID)
}

// AsNotFoundError attempts to unwrap an error into a NotFoundError.
func AsNotFoundError(err error) (*NotFoundError, bool) {
	var nfErr *NotFoundError
	if errors.As(err, &nfErr) {
		return nfErr, true
	}
	return nil, false
}

// RateLimitError captures rate limit responses from upstream roster APIs.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
