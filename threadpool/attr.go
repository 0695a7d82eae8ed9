package threadpool

import (
	"fmt"
	"time"
)

// Attr holds the tunables of a ThreadPool.
type Attr struct {
	// MinThreads workers are kept alive even when idle.
	MinThreads int `yaml:"min_threads" toml:"min_threads"`
	// MaxThreads bounds the number of workers, persistent ones included.
	MaxThreads int `yaml:"max_threads" toml:"max_threads"`
	// MaxIdleTime is how long a worker above MinThreads waits for a job
	// before it exits.
	MaxIdleTime time.Duration `yaml:"max_idle_time" toml:"max_idle_time"`
	// JobsPerThread is the queued jobs to worker ratio above which Add
	// starts another worker.
	JobsPerThread int `yaml:"jobs_per_thread" toml:"jobs_per_thread"`
	// MaxJobsTotal bounds the number of queued jobs.
	MaxJobsTotal int `yaml:"max_jobs_total" toml:"max_jobs_total"`
	// StarvationTime is how long a low or medium priority job waits before
	// it is moved up one priority.
	StarvationTime time.Duration `yaml:"starvation_time" toml:"starvation_time"`
}

const (
	DefaultMinThreads     = 1
	DefaultMaxThreads     = 10
	DefaultJobsPerThread  = 10
	DefaultMaxJobsTotal   = 100
	DefaultStarvationTime = 500 * time.Millisecond
	DefaultMaxIdleTime    = 10 * time.Second
)

// DefaultAttr returns the attributes Init uses for a nil Attr.
func DefaultAttr() Attr {
	return Attr{
		MinThreads:     DefaultMinThreads,
		MaxThreads:     DefaultMaxThreads,
		MaxIdleTime:    DefaultMaxIdleTime,
		JobsPerThread:  DefaultJobsPerThread,
		MaxJobsTotal:   DefaultMaxJobsTotal,
		StarvationTime: DefaultStarvationTime,
	}
}

// Validate checks the attributes for consistency.
func (a Attr) Validate() error {
	switch {
	case a.MinThreads < 0 || a.MaxThreads < 1:
		return fmt.Errorf("%w: min threads %d, max threads %d", ErrInvalidArg, a.MinThreads, a.MaxThreads)
	case a.MinThreads > a.MaxThreads:
		return fmt.Errorf("%w: min threads %d > max threads %d", ErrMaxThreads, a.MinThreads, a.MaxThreads)
	case a.JobsPerThread < 1:
		return fmt.Errorf("%w: jobs per thread %d", ErrInvalidArg, a.JobsPerThread)
	case a.MaxJobsTotal < 1:
		return fmt.Errorf("%w: %d", ErrTooManyJobs, a.MaxJobsTotal)
	case a.MaxIdleTime < 0 || a.StarvationTime < 0:
		return fmt.Errorf("%w: negative duration", ErrInvalidArg)
	}
	return nil
}
