package umock

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrNotSupported is returned by real implementations of facilities that do
// not exist on the running platform.
var ErrNotSupported = errors.New("umock: facility not supported on this platform")

// binding is one installed implementation. Each Install or Inject creates a
// new binding so that tokens can tell whether they are still innermost.
type binding[T any] struct {
	impl T
}

// Seam is the active-implementation pointer of one facility.
//
// A Seam is created once per facility at package initialization with the
// facility's real implementation and lives until the process exits. The
// zero value is not usable; use NewSeam.
type Seam[T any] struct {
	name   string
	real   T
	active atomic.Pointer[binding[T]]
}

// NewSeam creates a seam whose current implementation is real.
func NewSeam[T any](name string, real T) *Seam[T] {
	s := &Seam[T]{name: name, real: real}
	s.active.Store(&binding[T]{impl: real})
	return s
}

// Name returns the facility name used in diagnostics.
func (s *Seam[T]) Name() string { return s.name }

// Real returns the real implementation the seam was created with.
func (s *Seam[T]) Real() T { return s.real }

// Current returns the implementation servicing calls right now.
func (s *Seam[T]) Current() T {
	return s.active.Load().impl
}

// Install makes impl the current implementation and returns the one that
// was current before. Install does not record anything; callers that want
// scoped substitution with checked restoration use Inject.
func (s *Seam[T]) Install(impl T) T {
	prev := s.active.Swap(&binding[T]{impl: impl})
	return prev.impl
}

// Inject makes impl the current implementation until the returned token
// is restored.
//
// Tokens must be restored in reverse order of injection. The typical
// pattern is
//
//	inj := umock.NetdbSeam.Inject(double)
//	defer inj.Restore()
func (s *Seam[T]) Inject(impl T) *Injection[T] {
	own := &binding[T]{impl: impl}
	prev := s.active.Swap(own)
	return &Injection[T]{seam: s, own: own, prev: prev}
}

// Injection is the scoped substitution token returned by Seam.Inject. It
// carries the binding that was current before it, so the seam itself keeps
// no stack.
type Injection[T any] struct {
	seam     *Seam[T]
	own      *binding[T]
	prev     *binding[T]
	restored atomic.Bool
}

// Restore reinstalls the implementation that was current when the token
// was created. Calling Restore more than once has no further effect.
//
// Restore panics when another implementation was injected or installed
// after this one and is still current: restoring out of order would
// silently drop the inner substitution.
func (i *Injection[T]) Restore() {
	if i.restored.Load() {
		return
	}
	if !i.seam.active.CompareAndSwap(i.own, i.prev) {
		panic(fmt.Sprintf("umock: %s seam restored out of order", i.seam.name))
	}
	i.restored.Store(true)
}

// Active reports whether the token's implementation is the one servicing
// calls.
func (i *Injection[T]) Active() bool {
	return !i.restored.Load() && i.seam.active.Load() == i.own
}
