//go:build linux

package umock

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// kernelSigsetSize is the sigset size the rt_sig* system calls expect.
const kernelSigsetSize = 8

// SigmaskReal manipulates the thread signal mask with rt_sig* calls.
type SigmaskReal struct{}

func sigsetAdd(set *unix.Sigset_t, sig syscall.Signal) {
	n := uint(sig) - 1
	bits := uint(unsafe.Sizeof(set.Val[0])) * 8
	set.Val[n/bits] |= 1 << (n % bits)
}

func sigsetHas(set *unix.Sigset_t, sig syscall.Signal) bool {
	n := uint(sig) - 1
	bits := uint(unsafe.Sizeof(set.Val[0])) * 8
	return set.Val[n/bits]&(1<<(n%bits)) != 0
}

func (SigmaskReal) Pending(sig syscall.Signal) (bool, error) {
	var set unix.Sigset_t
	_, _, errno := unix.RawSyscall(unix.SYS_RT_SIGPENDING, uintptr(unsafe.Pointer(&set)), kernelSigsetSize, 0)
	if errno != 0 {
		return false, errno
	}
	return sigsetHas(&set, sig), nil
}

func (SigmaskReal) Block(sig syscall.Signal) (bool, error) {
	var set, old unix.Sigset_t
	sigsetAdd(&set, sig)
	if err := unix.PthreadSigmask(unix.SIG_BLOCK, &set, &old); err != nil {
		return false, err
	}
	return sigsetHas(&old, sig), nil
}

func (SigmaskReal) Unblock(sig syscall.Signal) error {
	var set unix.Sigset_t
	sigsetAdd(&set, sig)
	return unix.PthreadSigmask(unix.SIG_UNBLOCK, &set, nil)
}

func (SigmaskReal) Consume(sig syscall.Signal) error {
	var set unix.Sigset_t
	sigsetAdd(&set, sig)
	var ts unix.Timespec
	_, _, errno := unix.Syscall6(unix.SYS_RT_SIGTIMEDWAIT,
		uintptr(unsafe.Pointer(&set)), 0, uintptr(unsafe.Pointer(&ts)), kernelSigsetSize, 0, 0)
	if errno != 0 && errno != unix.EAGAIN {
		return errno
	}
	return nil
}
