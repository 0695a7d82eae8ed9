// Package threadpool runs jobs on a bounded set of worker goroutines.
//
// Jobs are queued by priority. A low or medium priority job that waited
// longer than Attr.StarvationTime is moved up one queue, so a steady
// stream of high priority work cannot starve the rest. Workers above
// Attr.MinThreads exit after Attr.MaxIdleTime without work.
//
// All locking goes through the umock Pthread facility and job request
// times come from the umock Sysinfo facility.
package threadpool

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upnplib/upnplib-sub003/umock"
	"github.com/upnplib/upnplib-sub003/upnpdebug"
)

// InvalidJobID is returned together with an error by Add.
const InvalidJobID = -1

// ThreadPool is a pool of worker goroutines. The zero value is ready for
// Init.
type ThreadPool struct {
	mu sync.Mutex
	// cond signals queued work and shutdown to workers.
	cond *sync.Cond
	// startStop signals worker exits and persistent job pickups.
	startStop *sync.Cond

	id          uuid.UUID
	attr        Attr
	initialized bool
	shutdown    bool
	suppressed  bool

	lastJobID    int
	totalThreads int
	busyThreads  int
	persistent   int

	queues        [High + 1][]*queuedJob
	persistentJob *queuedJob

	stats counters
}

// Init starts MinThreads workers. A nil attr selects DefaultAttr. Init
// must be called once before any other method except SetAttr,
// SetMaxJobsTotal and SuppressAdmission.
func (tp *ThreadPool) Init(attr *Attr) error {
	a := DefaultAttr()
	if attr != nil {
		a = *attr
	}
	if err := a.Validate(); err != nil {
		return err
	}

	tp.lazyInit()
	umock.MutexLock(&tp.mu)
	defer umock.MutexUnlock(&tp.mu)

	if tp.initialized {
		return fmt.Errorf("%w: thread pool %s already initialized", ErrInvalidArg, tp.id)
	}
	tp.id = uuid.New()
	tp.attr = a
	tp.initialized = true
	tp.shutdown = false
	tp.lastJobID = 0
	tp.stats = counters{}

	for tp.totalThreads < tp.attr.MinThreads {
		tp.startWorkerLocked()
	}
	tp.logger().Debug("thread pool started",
		zap.Int("min_threads", a.MinThreads), zap.Int("max_threads", a.MaxThreads))
	return nil
}

func (tp *ThreadPool) lazyInit() {
	umock.MutexLock(&tp.mu)
	if tp.cond == nil {
		tp.cond = sync.NewCond(&tp.mu)
		tp.startStop = sync.NewCond(&tp.mu)
	}
	umock.MutexUnlock(&tp.mu)
}

// ID identifies the pool in log records. It changes with every Init.
func (tp *ThreadPool) ID() uuid.UUID {
	umock.MutexLock(&tp.mu)
	defer umock.MutexUnlock(&tp.mu)
	return tp.id
}

func (tp *ThreadPool) logger() *zap.Logger {
	return upnpdebug.Logger(upnpdebug.TPOOL).With(zap.Stringer("pool", tp.id))
}

// GetAttr returns the current attributes.
func (tp *ThreadPool) GetAttr() Attr {
	umock.MutexLock(&tp.mu)
	defer umock.MutexUnlock(&tp.mu)
	return tp.attr
}

// SetAttr replaces the attributes. Missing workers up to MinThreads are
// started and idle workers are woken so that surplus ones can exit.
func (tp *ThreadPool) SetAttr(attr Attr) error {
	if err := attr.Validate(); err != nil {
		return err
	}
	tp.lazyInit()
	umock.MutexLock(&tp.mu)
	defer umock.MutexUnlock(&tp.mu)

	tp.attr = attr
	if tp.initialized && !tp.shutdown {
		for tp.totalThreads < tp.attr.MinThreads {
			tp.startWorkerLocked()
		}
		umock.CondBroadcast(tp.cond)
	}
	return nil
}

// SetMaxJobsTotal bounds the number of queued jobs. n must be positive.
func (tp *ThreadPool) SetMaxJobsTotal(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrTooManyJobs, n)
	}
	umock.MutexLock(&tp.mu)
	defer umock.MutexUnlock(&tp.mu)
	tp.attr.MaxJobsTotal = n
	return nil
}

// SuppressAdmission makes every later Add and AddPersistent fail with
// ErrShutdown. Workers keep running queued jobs.
func (tp *ThreadPool) SuppressAdmission() {
	umock.MutexLock(&tp.mu)
	defer umock.MutexUnlock(&tp.mu)
	tp.suppressed = true
}

func (tp *ThreadPool) admitLocked() error {
	switch {
	case !tp.initialized:
		return fmt.Errorf("%w: thread pool not initialized", ErrInvalidArg)
	case tp.shutdown || tp.suppressed:
		return ErrShutdown
	}
	return nil
}

func (tp *ThreadPool) queuedLocked() int {
	return len(tp.queues[Low]) + len(tp.queues[Med]) + len(tp.queues[High])
}

// Add queues job and returns its id.
func (tp *ThreadPool) Add(job Job) (int, error) {
	if job.Func == nil || job.Priority < Low || job.Priority > High {
		return InvalidJobID, ErrInvalidArg
	}
	tp.lazyInit()
	umock.MutexLock(&tp.mu)
	defer umock.MutexUnlock(&tp.mu)

	if err := tp.admitLocked(); err != nil {
		return InvalidJobID, err
	}
	total := tp.queuedLocked()
	if total >= tp.attr.MaxJobsTotal {
		upnpdebug.Printf(upnpdebug.Error, upnpdebug.TPOOL, "ThreadPoolAdd too many jobs: %d", total)
		return InvalidJobID, fmt.Errorf("%w: %d", ErrTooManyJobs, total)
	}

	qj := tp.newJobLocked(job)
	tp.queues[job.Priority] = append(tp.queues[job.Priority], qj)
	tp.addWorkerLocked()
	umock.CondSignal(tp.cond)
	return qj.id, nil
}

// AddPersistent hands job to a dedicated worker and returns once a worker
// picked it up. Persistent jobs are expected to run for the life of the
// pool; at least one other worker must remain for queued jobs.
//
// A job dropped before any worker took it fails with ErrNotFound after
// Remove and with ErrShutdown after Shutdown.
func (tp *ThreadPool) AddPersistent(job Job) (int, error) {
	if job.Func == nil {
		return InvalidJobID, ErrInvalidArg
	}
	tp.lazyInit()
	umock.MutexLock(&tp.mu)
	defer umock.MutexUnlock(&tp.mu)

	if err := tp.admitLocked(); err != nil {
		return InvalidJobID, err
	}
	if tp.totalThreads < tp.attr.MaxThreads {
		tp.startWorkerLocked()
	} else if tp.totalThreads-tp.persistent <= 1 {
		return InvalidJobID, ErrMaxThreads
	}
	// Only one persistent job can wait for a worker at a time.
	for tp.persistentJob != nil && !tp.shutdown {
		umock.CondWait(tp.startStop)
	}
	if tp.shutdown {
		return InvalidJobID, ErrShutdown
	}

	qj := tp.newJobLocked(job)
	tp.persistentJob = qj
	umock.CondSignal(tp.cond)
	for tp.persistentJob == qj && !tp.shutdown {
		umock.CondWait(tp.startStop)
	}
	switch {
	case qj.picked:
		return qj.id, nil
	case tp.shutdown:
		return InvalidJobID, ErrShutdown
	default:
		return InvalidJobID, fmt.Errorf("%w: persistent job %d removed before it started", ErrNotFound, qj.id)
	}
}

func (tp *ThreadPool) newJobLocked(job Job) *queuedJob {
	qj := &queuedJob{Job: job, id: tp.lastJobID, requested: umock.Time()}
	tp.lastJobID++
	return qj
}

// Remove takes a queued job out of its queue and returns it without
// calling its Free function.
func (tp *ThreadPool) Remove(id int) (Job, error) {
	tp.lazyInit()
	umock.MutexLock(&tp.mu)
	defer umock.MutexUnlock(&tp.mu)

	for p := High; p >= Low; p-- {
		q := tp.queues[p]
		for i, qj := range q {
			if qj.id == id {
				tp.queues[p] = append(q[:i:i], q[i+1:]...)
				return qj.Job, nil
			}
		}
	}
	if tp.persistentJob != nil && tp.persistentJob.id == id {
		qj := tp.persistentJob
		tp.persistentJob = nil
		umock.CondBroadcast(tp.startStop)
		return qj.Job, nil
	}
	return Job{}, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// Shutdown drops all queued jobs, calling their Free functions, and waits
// for every worker to finish its current job and exit. Jobs that do not
// return keep Shutdown waiting. Shutdown of a pool that is not running
// does nothing.
func (tp *ThreadPool) Shutdown() error {
	tp.lazyInit()
	umock.MutexLock(&tp.mu)
	defer umock.MutexUnlock(&tp.mu)

	if !tp.initialized {
		return nil
	}
	var dropped int
	for p := range tp.queues {
		for _, qj := range tp.queues[p] {
			qj.release()
			dropped++
		}
		tp.queues[p] = nil
	}
	if tp.persistentJob != nil {
		tp.persistentJob.release()
		tp.persistentJob = nil
		dropped++
	}

	tp.shutdown = true
	umock.CondBroadcast(tp.cond)
	umock.CondBroadcast(tp.startStop)
	for tp.totalThreads > 0 {
		umock.CondWait(tp.startStop)
	}
	tp.initialized = false
	tp.suppressed = false
	tp.logger().Debug("thread pool stopped", zap.Int("dropped_jobs", dropped))
	return nil
}

// addWorkerLocked starts workers while the queued jobs per non-persistent
// worker exceed JobsPerThread and MaxThreads allows.
func (tp *ThreadPool) addWorkerLocked() {
	jobs := tp.queuedLocked()
	threads := tp.totalThreads - tp.persistent
	for (threads == 0 || jobs/threads >= tp.attr.JobsPerThread) && tp.totalThreads < tp.attr.MaxThreads {
		tp.startWorkerLocked()
		threads++
	}
}

func (tp *ThreadPool) startWorkerLocked() {
	tp.totalThreads++
	go tp.worker()
}

// bumpPriorityLocked moves starved jobs up one queue.
func (tp *ThreadPool) bumpPriorityLocked(now time.Time) {
	for _, p := range []Priority{Med, Low} {
		q := tp.queues[p]
		n := 0
		for n < len(q) && now.Sub(q[n].requested) >= tp.attr.StarvationTime {
			n++
		}
		if n == 0 {
			continue
		}
		for _, qj := range q[:n] {
			tp.stats.waited(p, now.Sub(qj.requested))
			qj.requested = now
		}
		tp.queues[p+1] = append(tp.queues[p+1], q[:n]...)
		tp.queues[p] = append(q[:0:0], q[n:]...)
	}
}

// nextJobLocked dequeues the highest priority job.
func (tp *ThreadPool) nextJobLocked(now time.Time) *queuedJob {
	for p := High; p >= Low; p-- {
		if q := tp.queues[p]; len(q) > 0 {
			qj := q[0]
			tp.queues[p] = q[1:]
			tp.stats.waited(p, now.Sub(qj.requested))
			tp.stats.jobs[p]++
			return qj
		}
	}
	return nil
}

// waitLocked waits on cond for at most d. The timer takes the lock before
// broadcasting, so its wakeup cannot be lost.
func (tp *ThreadPool) waitLocked(d time.Duration) {
	t := time.AfterFunc(d, func() {
		umock.MutexLock(&tp.mu)
		umock.CondBroadcast(tp.cond)
		umock.MutexUnlock(&tp.mu)
	})
	umock.CondWait(tp.cond)
	t.Stop()
}

func (tp *ThreadPool) worker() {
	umock.MutexLock(&tp.mu)
	defer umock.MutexUnlock(&tp.mu)

	idleSince := time.Now()
	for {
		for tp.persistentJob == nil && tp.queuedLocked() == 0 && !tp.shutdown {
			if tp.totalThreads <= tp.attr.MinThreads {
				umock.CondWait(tp.cond)
				continue
			}
			idle := time.Since(idleSince)
			if idle >= tp.attr.MaxIdleTime {
				tp.stats.idle += idle
				tp.exitLocked()
				return
			}
			tp.waitLocked(tp.attr.MaxIdleTime - idle)
		}
		if tp.shutdown {
			tp.exitLocked()
			return
		}
		tp.stats.idle += time.Since(idleSince)

		now := umock.Time()
		tp.bumpPriorityLocked(now)

		qj, persistent := tp.persistentJob, true
		if qj != nil {
			qj.picked = true
			tp.persistentJob = nil
			tp.persistent++
			umock.CondBroadcast(tp.startStop)
		} else {
			qj, persistent = tp.nextJobLocked(now), false
		}

		tp.busyThreads++
		umock.MutexUnlock(&tp.mu)
		start := time.Now()
		qj.Func(qj.Arg)
		qj.release()
		work := time.Since(start)
		umock.MutexLock(&tp.mu)
		tp.busyThreads--
		tp.stats.work += work
		if persistent {
			tp.persistent--
		}
		idleSince = time.Now()
	}
}

func (tp *ThreadPool) exitLocked() {
	tp.totalThreads--
	umock.CondBroadcast(tp.startStop)
}
