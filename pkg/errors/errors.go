package errors

import (
	"errors"
	"fmt"
)

// Application error taxonomy. Handlers branch on these sentinels to pick the
// HTTP status; the Message carried alongside is the only text that may reach
// a caller.

var (
	// ErrValidation indicates user-correctable input; maps to 400.
	ErrValidation = errors.New("validation failed")

	// ErrConfiguration indicates a missing required secret or setting; maps to 500.
	ErrConfiguration = errors.New("configuration error")

	// ErrProvider indicates the email provider refused or failed the dispatch; maps to 500.
	ErrProvider = errors.New("provider error")

	// ErrInternal indicates an unexpected failure; maps to 500.
	ErrInternal = errors.New("internal error")
)

// SafeError pairs a sentinel with a localized message that is safe to return
// to the caller. The diagnostic cause, if any, stays in logs.
type SafeError struct {
	Sentinel error
	Message  string
	Cause    error
}

func (e *SafeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %v", e.Sentinel, e.Cause)
	}
	return e.Sentinel.Error()
}

func (e *SafeError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Sentinel, e.Cause}
	}
	return []error{e.Sentinel}
}

// ValidationError creates a user-correctable input error.
func ValidationError(message string) error {
	return &SafeError{Sentinel: ErrValidation, Message: message}
}

// ConfigurationError creates a missing-configuration error.
func ConfigurationError(message string) error {
	return &SafeError{Sentinel: ErrConfiguration, Message: message}
}

// ProviderError creates a provider-failure error wrapping the raw cause.
func ProviderError(message string, cause error) error {
	return &SafeError{Sentinel: ErrProvider, Message: message, Cause: cause}
}

// SafeMessage extracts the caller-visible message from err, or fallback when
// err carries none.
func SafeMessage(err error, fallback string) string {
	var se *SafeError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
