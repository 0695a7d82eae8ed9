package sock

import (
	"golang.org/x/sys/unix"

	"github.com/upnplib/upnplib-sub003/umock"
)

const sendFlags = 0

// noSigpipe sets SO_NOSIGPIPE on fd and returns a function restoring the
// previous setting. Darwin has no MSG_NOSIGNAL.
func noSigpipe(fd int) func() {
	old, err := umock.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_NOSIGPIPE)
	if err != nil {
		return func() {}
	}
	if err := umock.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_NOSIGPIPE, 1); err != nil {
		return func() {}
	}
	return func() {
		_ = umock.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_NOSIGPIPE, old)
	}
}
