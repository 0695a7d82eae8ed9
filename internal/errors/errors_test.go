package errors

import (
	stderrors "errors"
	"os"
	"syscall"
	"testing"
)

func TestNetworkError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *NetworkError
		want string
	}{
		{
			name: "operation only",
			err:  &NetworkError{Operation: "poll socket"},
			want: "network error: poll socket",
		},
		{
			name: "with details and cause",
			err:  &NetworkError{Operation: "send", Err: syscall.EPIPE, Details: "fd 7"},
			want: "network error: send (fd 7): " + syscall.EPIPE.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	var err error = &NetworkError{Operation: "recv", Err: os.ErrDeadlineExceeded}

	if !stderrors.Is(err, os.ErrDeadlineExceeded) {
		t.Error("errors.Is(err, os.ErrDeadlineExceeded) = false, want true")
	}

	var netErr *NetworkError
	if !stderrors.As(err, &netErr) {
		t.Fatal("errors.As(err, *NetworkError) = false, want true")
	}
	if netErr.Operation != "recv" {
		t.Errorf("Operation = %q, want %q", netErr.Operation, "recv")
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "threadpool.max_jobs_total", Value: 0, Message: "must be at least 1"}
	want := "validation error: threadpool.max_jobs_total=0: must be at least 1"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
