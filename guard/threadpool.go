package guard

import (
	"go.uber.org/zap"

	"github.com/upnplib/upnplib-sub003/threadpool"
	"github.com/upnplib/upnplib-sub003/upnpdebug"
)

// ThreadPool is the part of a thread pool a ThreadPoolGuard drives.
// *threadpool.ThreadPool implements it.
type ThreadPool interface {
	Init(attr *threadpool.Attr) error
	SuppressAdmission()
	SetMaxJobsTotal(n int) error
	Shutdown() error
}

var _ ThreadPool = (*threadpool.ThreadPool)(nil)

// DefaultMaxJobsTotal is the queued jobs bound of an unconfigured pool.
const DefaultMaxJobsTotal = threadpool.DefaultMaxJobsTotal

const threadPoolResource = "thread pool"

// ThreadPoolGuard keeps a thread pool running for the life of a scope.
type ThreadPoolGuard struct {
	lifecycle
	tp  ThreadPool
	cfg *config
}

// NewThreadPoolGuard initializes tp. With shutdown set the pool then
// refuses every job, which lets tests exercise code that queues jobs
// without running them. Otherwise the pool's queued jobs are bounded by
// maxJobsTotal.
//
// A failing Init returns *ResourceInitError and nothing needs to be shut
// down. A failing configuration shuts tp down again and returns
// *ResourceConfigError.
func NewThreadPoolGuard(tp ThreadPool, shutdown bool, maxJobsTotal int, opts ...Option) (*ThreadPoolGuard, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	g := &ThreadPoolGuard{tp: tp, cfg: cfg}
	g.set(Acquiring)

	if err := tp.Init(cfg.attr); err != nil {
		g.set(Uninitialized)
		return nil, &ResourceInitError{Resource: threadPoolResource, Code: codeOf(err), Err: err}
	}

	if shutdown {
		tp.SuppressAdmission()
	} else if err := tp.SetMaxJobsTotal(maxJobsTotal); err != nil {
		if serr := tp.Shutdown(); serr != nil {
			cfg.log(upnpdebug.TPOOL).Error("shutdown after failed configuration", zap.Error(serr))
		}
		g.set(Released)
		return nil, &ResourceConfigError{Resource: threadPoolResource, Code: codeOf(err), Err: err}
	}

	g.set(Acquired)
	return g, nil
}

// Close shuts the pool down. A shutdown error is logged and returned.
func (g *ThreadPoolGuard) Close() error {
	return g.release(func() error {
		err := g.tp.Shutdown()
		if err != nil {
			g.cfg.log(upnpdebug.TPOOL).Error("thread pool shutdown failed", zap.Error(err))
		}
		return err
	})
}
