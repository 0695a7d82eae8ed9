package guard

import (
	"strconv"
	"sync"
	"sync/atomic"
)

// State is the lifecycle position of a guard.
type State int32

const (
	Uninitialized State = iota
	Acquiring
	Acquired
	Releasing
	Released
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Acquiring:
		return "acquiring"
	case Acquired:
		return "acquired"
	case Releasing:
		return "releasing"
	case Released:
		return "released"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// lifecycle is embedded by every guard.
type lifecycle struct {
	state atomic.Int32
	once  sync.Once
}

// State returns the current lifecycle state.
func (l *lifecycle) State() State { return State(l.state.Load()) }

func (l *lifecycle) set(s State) { l.state.Store(int32(s)) }

// release runs fn once, moving through Releasing to Released.
func (l *lifecycle) release(fn func() error) error {
	var err error
	l.once.Do(func() {
		l.set(Releasing)
		err = fn()
		l.set(Released)
	})
	return err
}
