package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized marks a 401 that survived the refresh attempt.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden marks a 403. Permission problems are not recoverable by a
	// token refresh and are surfaced as-is.
	ErrForbidden = errors.New("permission denied")
)

// RequestError is a failure before any HTTP status was received: timeouts,
// DNS failures, refused connections. These are a different kind than API
// errors and are typically worth retrying or reporting as connectivity
// problems.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response. Message carries the backend's error body
// verbatim when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("the server returned HTTP %d", e.Status)
}

// Is maps the auth statuses onto their sentinels so callers can branch with
// errors.Is instead of inspecting status codes.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	}
	return false
}
