package threadpool

import (
	"time"

	"github.com/upnplib/upnplib-sub003/umock"
)

type counters struct {
	jobs [High + 1]int
	wait [High + 1]time.Duration
	work time.Duration
	idle time.Duration
}

func (c *counters) waited(p Priority, d time.Duration) {
	c.wait[p] += d
}

// QueueStats describes one priority queue.
type QueueStats struct {
	// Current is the number of jobs waiting now.
	Current int
	// Total is the number of jobs taken from the queue by workers.
	Total int
	// TotalWait is the time jobs spent in the queue, including the time
	// before a starvation bump moved them on.
	TotalWait time.Duration
}

// AvgWait is TotalWait per job taken.
func (q QueueStats) AvgWait() time.Duration {
	if q.Total == 0 {
		return 0
	}
	return q.TotalWait / time.Duration(q.Total)
}

// Stats is a snapshot of the pool's counters.
type Stats struct {
	High, Med, Low QueueStats

	TotalWorkTime time.Duration
	TotalIdleTime time.Duration

	WorkerThreads     int
	IdleThreads       int
	PersistentThreads int
	TotalThreads      int
	MaxThreads        int
}

// Stats returns a snapshot of the pool's counters.
func (tp *ThreadPool) Stats() Stats {
	tp.lazyInit()
	umock.MutexLock(&tp.mu)
	defer umock.MutexUnlock(&tp.mu)

	q := func(p Priority) QueueStats {
		return QueueStats{Current: len(tp.queues[p]), Total: tp.stats.jobs[p], TotalWait: tp.stats.wait[p]}
	}
	return Stats{
		High:              q(High),
		Med:               q(Med),
		Low:               q(Low),
		TotalWorkTime:     tp.stats.work,
		TotalIdleTime:     tp.stats.idle,
		WorkerThreads:     tp.busyThreads,
		IdleThreads:       tp.totalThreads - tp.busyThreads,
		PersistentThreads: tp.persistent,
		TotalThreads:      tp.totalThreads,
		MaxThreads:        tp.attr.MaxThreads,
	}
}
