package umock

import "sync"

// Pthread is the thread synchronization facility. Go mutexes and condition
// variables need no init or destroy step, so only the operations remain.
type Pthread interface {
	MutexLock(m *sync.Mutex)
	MutexUnlock(m *sync.Mutex)
	CondWait(c *sync.Cond)
	CondSignal(c *sync.Cond)
	CondBroadcast(c *sync.Cond)
}

// PthreadReal forwards to package sync.
type PthreadReal struct{}

func (PthreadReal) MutexLock(m *sync.Mutex)    { m.Lock() }
func (PthreadReal) MutexUnlock(m *sync.Mutex)  { m.Unlock() }
func (PthreadReal) CondWait(c *sync.Cond)      { c.Wait() }
func (PthreadReal) CondSignal(c *sync.Cond)    { c.Signal() }
func (PthreadReal) CondBroadcast(c *sync.Cond) { c.Broadcast() }

// PthreadSeam is the active-implementation pointer of the Pthread facility.
var PthreadSeam = NewSeam[Pthread]("pthread", PthreadReal{})

// MutexLock locks m with the current Pthread.
func MutexLock(m *sync.Mutex) { PthreadSeam.Current().MutexLock(m) }

// MutexUnlock unlocks m with the current Pthread.
func MutexUnlock(m *sync.Mutex) { PthreadSeam.Current().MutexUnlock(m) }

// CondWait waits on c with the current Pthread. The caller holds c.L.
func CondWait(c *sync.Cond) { PthreadSeam.Current().CondWait(c) }

// CondSignal wakes one waiter of c with the current Pthread.
func CondSignal(c *sync.Cond) { PthreadSeam.Current().CondSignal(c) }

// CondBroadcast wakes all waiters of c with the current Pthread.
func CondBroadcast(c *sync.Cond) { PthreadSeam.Current().CondBroadcast(c) }
