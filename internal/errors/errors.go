// Package errors defines the error types shared by the socket and
// configuration layers.
//
// Callers match them with the standard library:
//
//	var netErr *errors.NetworkError
//	if stderrors.As(err, &netErr) { ... }
package errors

import (
	"fmt"
)

// NetworkError reports a failed operation on a socket or interface.
type NetworkError struct {
	// Operation names what was attempted, e.g. "poll socket".
	Operation string
	// Err is the underlying cause. It may be nil.
	Err error
	// Details adds context such as the descriptor or byte counts.
	Details string
}

func (e *NetworkError) Error() string {
	msg := "network error: " + e.Operation
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError reports an unacceptable input value.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s=%v: %s", e.Field, e.Value, e.Message)
}
