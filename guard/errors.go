package guard

import (
	"errors"
	"fmt"
	"syscall"
)

// ResourceInitError reports that the acquisition step of a guard failed.
type ResourceInitError struct {
	Resource string
	// Code is the status reported by the resource, -1 when it had none.
	Code int
	Err  error
}

func (e *ResourceInitError) Error() string {
	return fmt.Sprintf("MSG1045: Initializing %s fails with return number %d: %v", e.Resource, e.Code, e.Err)
}

func (e *ResourceInitError) Unwrap() error { return e.Err }

// ResourceConfigError reports that configuring an initialized resource
// failed. The resource has been released again.
type ResourceConfigError struct {
	Resource string
	Code     int
	Err      error
}

func (e *ResourceConfigError) Error() string {
	return fmt.Sprintf("MSG1046: Configuring %s fails with return number %d: %v", e.Resource, e.Code, e.Err)
}

func (e *ResourceConfigError) Unwrap() error { return e.Err }

// LoggingInitError reports that the logging subsystem could not be opened.
type LoggingInitError struct {
	Err error
}

func (e *LoggingInitError) Error() string {
	return fmt.Sprintf("MSG1041: Failed to initialize logging: %v", e.Err)
}

func (e *LoggingInitError) Unwrap() error { return e.Err }

// codeOf extracts a numeric status from err.
func codeOf(err error) int {
	var coder interface{ Code() int }
	if errors.As(err, &coder) {
		return coder.Code()
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return -1
}
