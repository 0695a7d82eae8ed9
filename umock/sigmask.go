package umock

import "syscall"

// Sigmask controls the signal mask of the calling OS thread. Callers lock
// their goroutine to its thread (runtime.LockOSThread) for as long as the
// mask must stay in effect.
type Sigmask interface {
	// Pending reports whether sig is pending for the calling thread.
	Pending(sig syscall.Signal) (bool, error)
	// Block adds sig to the thread's mask and reports whether it was
	// already blocked.
	Block(sig syscall.Signal) (wasBlocked bool, err error)
	// Unblock removes sig from the thread's mask.
	Unblock(sig syscall.Signal) error
	// Consume accepts one pending instance of sig without delivering it.
	// It never blocks.
	Consume(sig syscall.Signal) error
}

// SigmaskSeam is the active-implementation pointer of the Sigmask facility.
var SigmaskSeam = NewSeam[Sigmask]("sigmask", SigmaskReal{})

// SigPending reports a pending signal with the current Sigmask.
func SigPending(sig syscall.Signal) (bool, error) { return SigmaskSeam.Current().Pending(sig) }

// SigBlock blocks a signal with the current Sigmask.
func SigBlock(sig syscall.Signal) (bool, error) { return SigmaskSeam.Current().Block(sig) }

// SigUnblock unblocks a signal with the current Sigmask.
func SigUnblock(sig syscall.Signal) error { return SigmaskSeam.Current().Unblock(sig) }

// SigConsume accepts a pending signal with the current Sigmask.
func SigConsume(sig syscall.Signal) error { return SigmaskSeam.Current().Consume(sig) }
