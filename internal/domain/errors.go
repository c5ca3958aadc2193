package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration       = errors.New("API token not configured on server")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUpstreamUnreachable = errors.New("upstream provider unreachable")
	ErrNotReady            = errors.New("submission is still processing")
	ErrSubmissionFailed    = errors.New("upstream reported the submission as failed")
	ErrUnrecognizedStatus  = errors.New("upstream status payload has no recognizable state")
)

// ValidationError rejects a request before any network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// UpstreamError carries the status code and message of a rejected upstream call.
type UpstreamError struct {
	Backend    Backend
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Backend, e.StatusCode, e.Message)
}

// UnreachableError is a transport failure talking to the provider. It
// matches ErrUpstreamUnreachable and its cause under errors.Is.
type UnreachableError struct {
	Backend  Backend
	Endpoint string
	Cause    error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrUpstreamUnreachable, e.Backend, e.Endpoint, e.Cause)
}

func (e *UnreachableError) Unwrap() []error {
	return []error{ErrUpstreamUnreachable, e.Cause}
}

// Reason is the cause text without the endpoint.
func (e *UnreachableError) Reason() string {
	if e.Cause == nil {
		return ErrUpstreamUnreachable.Error()
	}
	return e.Cause.Error()
}

// AsUpstreamError extracts an UpstreamError from err's chain.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr, true
	}
	return nil, false
}
