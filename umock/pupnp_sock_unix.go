//go:build unix

package umock

import "golang.org/x/sys/unix"

// PupnpSock switches sockets between blocking and non-blocking mode.
type PupnpSock interface {
	MakeBlocking(fd int) error
	MakeNonBlocking(fd int) error
}

// PupnpSockReal toggles O_NONBLOCK.
type PupnpSockReal struct{}

func (PupnpSockReal) MakeBlocking(fd int) error { return unix.SetNonblock(fd, false) }

func (PupnpSockReal) MakeNonBlocking(fd int) error { return unix.SetNonblock(fd, true) }

// PupnpSockSeam is the active-implementation pointer of the PupnpSock facility.
var PupnpSockSeam = NewSeam[PupnpSock]("pupnp_sock", PupnpSockReal{})

// MakeBlocking clears O_NONBLOCK on fd with the current PupnpSock.
func MakeBlocking(fd int) error { return PupnpSockSeam.Current().MakeBlocking(fd) }

// MakeNonBlocking sets O_NONBLOCK on fd with the current PupnpSock.
func MakeNonBlocking(fd int) error { return PupnpSockSeam.Current().MakeNonBlocking(fd) }
