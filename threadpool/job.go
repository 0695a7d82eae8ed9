package threadpool

import "time"

// Priority selects the queue a job is placed in.
type Priority int

const (
	Low Priority = iota
	Med
	High
)

// DefaultPriority is used by NewJob.
const DefaultPriority = Med

func (p Priority) String() string {
	switch p {
	case Low:
		return "low"
	case Med:
		return "med"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// Job is a unit of work. Func is called with Arg on a worker. Free, when
// set, is called with Arg after Func returned or when the job is dropped
// without running.
type Job struct {
	Func     func(arg interface{})
	Arg      interface{}
	Free     func(arg interface{})
	Priority Priority
}

// NewJob returns a job with the default priority.
func NewJob(fn func(arg interface{}), arg interface{}) Job {
	return Job{Func: fn, Arg: arg, Priority: DefaultPriority}
}

type queuedJob struct {
	Job
	id        int
	requested time.Time
	// picked is set when a worker took the job.
	picked bool
}

func (j *queuedJob) release() {
	if j.Free != nil {
		j.Free(j.Arg)
	}
}
