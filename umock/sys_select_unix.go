//go:build unix

package umock

import "golang.org/x/sys/unix"

// SysSelect waits for descriptor readiness. poll(2) replaces select(2): it
// has no FD_SETSIZE limit and is available on every supported unix.
type SysSelect interface {
	// Poll waits up to timeout milliseconds; a negative timeout blocks.
	Poll(fds []unix.PollFd, timeout int) (int, error)
}

// SysSelectReal forwards to unix.Poll.
type SysSelectReal struct{}

func (SysSelectReal) Poll(fds []unix.PollFd, timeout int) (int, error) {
	return unix.Poll(fds, timeout)
}

// SysSelectSeam is the active-implementation pointer of the SysSelect facility.
var SysSelectSeam = NewSeam[SysSelect]("sys_select", SysSelectReal{})

// Poll waits for readiness with the current SysSelect.
func Poll(fds []unix.PollFd, timeout int) (int, error) {
	return SysSelectSeam.Current().Poll(fds, timeout)
}
