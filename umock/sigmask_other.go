//go:build !linux

package umock

import "syscall"

// SigmaskReal reports ErrNotSupported where per-thread signal masks are
// not reachable.
type SigmaskReal struct{}

func (SigmaskReal) Pending(syscall.Signal) (bool, error) { return false, ErrNotSupported }

func (SigmaskReal) Block(syscall.Signal) (bool, error) { return false, ErrNotSupported }

func (SigmaskReal) Unblock(syscall.Signal) error { return ErrNotSupported }

func (SigmaskReal) Consume(syscall.Signal) error { return ErrNotSupported }
