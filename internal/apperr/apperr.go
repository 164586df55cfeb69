// Package apperr defines the error kinds surfaced to the user as status lines.
package apperr

import (
	"context"
	"errors"
	"fmt"
)

// NetworkError reports a transport failure or a non-2xx response.
type NetworkError struct {
	Op     string // Human readable description of the failed call
	Status int    // HTTP status, 0 on transport failure
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Kind() string { return "network" }

// ValidationError reports user input that cannot be sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Kind() string { return "validation" }

// Validation returns a ValidationError with the given message.
func Validation(message string) error {
	return &ValidationError{Message: message}
}

type kinder interface {
	Kind() string
}

// Kind classifies err for logging.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	// Deadlines come first so a timed out request is not reported as a plain network error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return "internal"
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
