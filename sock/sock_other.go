//go:build !unix

package sock

import (
	"time"

	"github.com/upnplib/upnplib-sub003/internal/errors"
	"github.com/upnplib/upnplib-sub003/umock"
)

func (s *SockInfo) readFD(time.Duration, []byte) (int, error) {
	return 0, &errors.NetworkError{Operation: "read socket", Err: umock.ErrNotSupported}
}

func (s *SockInfo) writeFD(time.Duration, []byte) (int, error) {
	return 0, &errors.NetworkError{Operation: "write socket", Err: umock.ErrNotSupported}
}
