package threadpool

import "strconv"

// Errno is a thread pool status code. It implements error and exposes its
// numeric value through Code.
type Errno int

const (
	ErrInvalidArg  Errno = -1
	ErrOutOfMem    Errno = -7
	ErrMaxThreads  Errno = -8
	ErrTooManyJobs Errno = -9
	ErrShutdown    Errno = -10
	ErrNotFound    Errno = -11
)

var errnoText = map[Errno]string{
	ErrInvalidArg:  "invalid argument",
	ErrOutOfMem:    "out of memory",
	ErrMaxThreads:  "maximum number of threads reached",
	ErrTooManyJobs: "too many jobs",
	ErrShutdown:    "thread pool does not accept jobs",
	ErrNotFound:    "job not found",
}

func (e Errno) Error() string {
	if s, ok := errnoText[e]; ok {
		return s
	}
	return "threadpool error " + strconv.Itoa(int(e))
}

// Code returns the numeric status.
func (e Errno) Code() int { return int(e) }
