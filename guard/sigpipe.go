package guard

import (
	"errors"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"github.com/upnplib/upnplib-sub003/umock"
	"github.com/upnplib/upnplib-sub003/upnpdebug"
)

// maxDrain bounds the pending SIGPIPE instances Close consumes.
const maxDrain = 64

// SigpipeGuard blocks SIGPIPE on the calling OS thread so that a write to
// a broken connection fails with EPIPE instead of raising the signal.
// It is meant for writes that cannot pass MSG_NOSIGNAL, such as TLS
// writes.
//
// The goroutine is locked to its OS thread until Close, which must be
// called on the same goroutine. Guards nest: Close restores exactly the
// mask and pending state the guard found. Where the signal mask cannot be
// controlled the guard does nothing.
type SigpipeGuard struct {
	lifecycle
	cfg *config

	noop bool
	// wasPending means SIGPIPE was pending on entry; then the mask is not
	// touched at all.
	wasPending bool
	// blocked means this guard added SIGPIPE to the mask.
	blocked bool
}

// NewSigpipeGuard blocks SIGPIPE for the calling thread.
func NewSigpipeGuard(opts ...Option) (*SigpipeGuard, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	g := &SigpipeGuard{cfg: cfg}
	g.set(Acquiring)
	runtime.LockOSThread()

	pending, err := umock.SigPending(syscall.SIGPIPE)
	if errors.Is(err, umock.ErrNotSupported) {
		runtime.UnlockOSThread()
		g.noop = true
		g.set(Acquired)
		return g, nil
	}
	if err != nil {
		runtime.UnlockOSThread()
		g.set(Uninitialized)
		return nil, &ResourceInitError{Resource: "SIGPIPE mask", Code: codeOf(err), Err: err}
	}

	g.wasPending = pending
	if !pending {
		wasBlocked, err := umock.SigBlock(syscall.SIGPIPE)
		if err != nil {
			runtime.UnlockOSThread()
			g.set(Uninitialized)
			return nil, &ResourceInitError{Resource: "SIGPIPE mask", Code: codeOf(err), Err: err}
		}
		g.blocked = !wasBlocked
	}
	g.set(Acquired)
	return g, nil
}

// Close consumes any SIGPIPE raised inside the scope and unblocks the
// signal if this guard blocked it.
func (g *SigpipeGuard) Close() error {
	return g.release(func() error {
		if g.noop {
			return nil
		}
		defer runtime.UnlockOSThread()
		if g.wasPending {
			return nil
		}

		var err error
		for i := 0; i < maxDrain; i++ {
			var pending bool
			if pending, err = umock.SigPending(syscall.SIGPIPE); err != nil || !pending {
				break
			}
			if err = umock.SigConsume(syscall.SIGPIPE); err != nil {
				break
			}
		}
		if g.blocked {
			if uerr := umock.SigUnblock(syscall.SIGPIPE); uerr != nil && err == nil {
				err = uerr
			}
		}
		if err != nil {
			g.cfg.log(upnpdebug.API).Error("restoring SIGPIPE mask failed", zap.Error(err))
		}
		return err
	})
}
