package llm

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// ConfigError indicates the transport cannot run at all (missing credential).
// Fails fast, before any network call, and is never retried.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// TransientError is a 500/503-class upstream failure worth retrying.
type TransientError struct {
	Status  int
	Message string
	Cause   error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient upstream error (status %d): %s", e.Status, e.Message)
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}

// UpstreamError is any other upstream failure. Not retried; it carries the
// original message for the UI layer.
type UpstreamError struct {
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream error: %s", e.Message)
	}
	return "upstream error"
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// IsTransient reports whether err signals a retryable server-side failure.
func IsTransient(err error) bool {
	var transient *TransientError
	if errors.As(err, &transient) {
		return true
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return isTransientStatus(apiErr.Code)
	}
	return false
}

func isTransientStatus(code int) bool {
	return code == 500 || code == 503
}

// classifyError maps a raw transport failure into the closed error variant
// at the adapter boundary, so callers never see SDK-specific error shapes.
func classifyError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if isTransientStatus(apiErr.Code) {
			return &TransientError{Status: apiErr.Code, Message: apiErr.Message, Cause: err}
		}
		return &UpstreamError{Message: apiErr.Message, Cause: err}
	}
	return &UpstreamError{Message: err.Error(), Cause: err}
}
