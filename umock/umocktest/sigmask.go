package umocktest

import (
	"sync"
	"syscall"
	"testing"

	"github.com/upnplib/upnplib-sub003/umock"
)

// FakeSigmask models the signal state of one thread: a blocked set and a
// pending set. Raise makes a signal pending when it is blocked and counts
// a delivery otherwise.
type FakeSigmask struct {
	mu        sync.Mutex
	blocked   map[syscall.Signal]bool
	pending   map[syscall.Signal]bool
	delivered map[syscall.Signal]int
}

var _ umock.Sigmask = (*FakeSigmask)(nil)

// NewFakeSigmask injects an empty FakeSigmask for the rest of the test.
func NewFakeSigmask(t testing.TB) *FakeSigmask {
	f := &FakeSigmask{
		blocked:   map[syscall.Signal]bool{},
		pending:   map[syscall.Signal]bool{},
		delivered: map[syscall.Signal]int{},
	}
	inject[umock.Sigmask](t, umock.SigmaskSeam, f, nil)
	return f
}

func (f *FakeSigmask) Pending(sig syscall.Signal) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending[sig], nil
}

func (f *FakeSigmask) Block(sig syscall.Signal) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	was := f.blocked[sig]
	f.blocked[sig] = true
	return was, nil
}

// Unblock delivers a pending signal, as the kernel would.
func (f *FakeSigmask) Unblock(sig syscall.Signal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocked[sig] = false
	if f.pending[sig] {
		f.pending[sig] = false
		f.delivered[sig]++
	}
	return nil
}

func (f *FakeSigmask) Consume(sig syscall.Signal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending[sig] = false
	return nil
}

// Raise generates sig for the modeled thread.
func (f *FakeSigmask) Raise(sig syscall.Signal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.blocked[sig] {
		f.pending[sig] = true
		return
	}
	f.delivered[sig]++
}

// SetBlocked presets the blocked state of sig.
func (f *FakeSigmask) SetBlocked(sig syscall.Signal, blocked bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocked[sig] = blocked
}

// State returns whether sig is blocked and pending.
func (f *FakeSigmask) State(sig syscall.Signal) (blocked, pending bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blocked[sig], f.pending[sig]
}

// Delivered returns how often sig reached the modeled thread.
func (f *FakeSigmask) Delivered(sig syscall.Signal) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.delivered[sig]
}
