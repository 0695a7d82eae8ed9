//go:build unix

package sock

import (
	"context"
	"crypto/tls"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/upnplib/upnplib-sub003/guard"
	"github.com/upnplib/upnplib-sub003/internal/errors"
	"github.com/upnplib/upnplib-sub003/umock"
	"github.com/upnplib/upnplib-sub003/upnpdebug"
)

// waitReady polls fd for events until deadline; a zero deadline waits
// forever. Interrupted polls are retried with the time that is left.
func waitReady(fd int, events int16, deadline time.Time) error {
	fds := []unix.PollFd{{Fd: int32(fd), Events: events}}
	for {
		n, err := umock.Poll(fds, pollTimeout(deadline))
		if stderrors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrTimedOut
		}
		return nil
	}
}

// pollTimeout converts a deadline into poll milliseconds, rounding up so
// that a short remaining wait does not turn into a busy poll.
func pollTimeout(deadline time.Time) int {
	if deadline.IsZero() {
		return -1
	}
	d := time.Until(deadline)
	if d <= 0 {
		return 0
	}
	return int((d + time.Millisecond - 1) / time.Millisecond)
}

func (s *SockInfo) poll(op string, events int16, deadline time.Time, wait time.Duration) error {
	err := waitReady(s.FD, events, deadline)
	if stderrors.Is(err, ErrTimedOut) {
		return timedOut(op, s.FD, wait)
	}
	if err != nil {
		return &errors.NetworkError{
			Operation: op,
			Err:       err,
			Details:   fmt.Sprintf("poll on fd %d failed", s.FD),
		}
	}
	return nil
}

func (s *SockInfo) readFD(wait time.Duration, buf []byte) (int, error) {
	if err := s.poll("read socket", unix.POLLIN, s.deadline(wait), wait); err != nil {
		return 0, err
	}
	n, err := umock.Recv(s.FD, buf, 0)
	if err != nil {
		return 0, &errors.NetworkError{
			Operation: "read socket",
			Err:       err,
			Details:   fmt.Sprintf("recv on fd %d", s.FD),
		}
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// writeFD sends buf in as many chunks as the socket accepts. All chunks
// share one deadline.
func (s *SockInfo) writeFD(wait time.Duration, buf []byte) (int, error) {
	restore := noSigpipe(s.FD)
	defer restore()

	deadline := s.deadline(wait)
	sent := 0
	for sent < len(buf) {
		if sent > 0 && !deadline.IsZero() && !time.Now().Before(deadline) {
			return sent, timedOut("write socket", s.FD, wait)
		}
		if err := s.poll("write socket", unix.POLLOUT, deadline, wait); err != nil {
			return sent, err
		}
		n, err := umock.Send(s.FD, buf[sent:], sendFlags)
		if stderrors.Is(err, unix.EINTR) || stderrors.Is(err, unix.EAGAIN) {
			continue
		}
		if err == nil && n <= 0 {
			err = io.ErrShortWrite
		}
		if err != nil {
			return sent, &errors.NetworkError{
				Operation: "write socket",
				Err:       fmt.Errorf("%w: %w", ErrSocketWrite, err),
				Details:   fmt.Sprintf("%d/%d bytes sent on fd %d", sent, len(buf), s.FD),
			}
		}
		sent += n
	}
	return sent, nil
}

// MakeBlocking clears O_NONBLOCK on the descriptor.
func (s *SockInfo) MakeBlocking() error {
	if err := umock.MakeBlocking(s.FD); err != nil {
		return &errors.NetworkError{Operation: "make blocking", Err: err, Details: fmt.Sprintf("fd %d", s.FD)}
	}
	return nil
}

// MakeNonBlocking sets O_NONBLOCK on the descriptor.
func (s *SockInfo) MakeNonBlocking() error {
	if err := umock.MakeNonBlocking(s.FD); err != nil {
		return &errors.NetworkError{Operation: "make non-blocking", Err: err, Details: fmt.Sprintf("fd %d", s.FD)}
	}
	return nil
}

// SSLConnect runs a TLS client handshake over the descriptor. Afterwards
// Read and Write go through the TLS connection.
func (s *SockInfo) SSLConnect(ctx context.Context, cfg *tls.Config) error {
	dup, err := unix.Dup(s.FD)
	if err != nil {
		return &errors.NetworkError{Operation: "tls connect", Err: err, Details: fmt.Sprintf("dup fd %d", s.FD)}
	}
	f := os.NewFile(uintptr(dup), fmt.Sprintf("sock-%d", s.FD))
	conn, err := net.FileConn(f)
	_ = f.Close()
	if err != nil {
		return &errors.NetworkError{Operation: "tls connect", Err: err, Details: fmt.Sprintf("fd %d", s.FD)}
	}

	g, err := guard.NewSigpipeGuard()
	if err != nil {
		_ = conn.Close()
		return &errors.NetworkError{Operation: "tls connect", Err: err, Details: "cannot block SIGPIPE"}
	}
	defer func() { _ = g.Close() }()

	tc := tls.Client(conn, cfg)
	if err := tc.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return &errors.NetworkError{Operation: "tls connect", Err: err, Details: "handshake failed"}
	}
	s.TLS = tc
	return nil
}

// Destroy ends the TLS session if any, shuts the socket down with how
// (unix.SHUT_RD, SHUT_WR or SHUT_RDWR) and closes it. Shutting down a
// socket that is not connected is not an error.
func (s *SockInfo) Destroy(how int) error {
	var errs []error
	if s.TLS != nil {
		if err := s.TLS.Close(); err != nil && !stderrors.Is(err, net.ErrClosed) {
			upnpdebug.Logger(upnpdebug.HTTP).Info("closing TLS session", zap.Error(err))
		}
		s.TLS = nil
	}
	if s.FD < 0 {
		return nil
	}

	log := upnpdebug.Logger(upnpdebug.HTTP)
	if err := umock.Shutdown(s.FD, how); err != nil {
		msg := fmt.Sprintf("MSG1010: syscall shutdown() returned %q", err.Error())
		if stderrors.Is(err, unix.ENOTCONN) {
			log.Info(msg, zap.Int("fd", s.FD))
		} else {
			log.Error(msg, zap.Int("fd", s.FD))
			errs = append(errs, &errors.NetworkError{Operation: "shutdown socket", Err: err, Details: fmt.Sprintf("fd %d", s.FD)})
		}
	}
	if err := umock.CloseSocket(s.FD); err != nil {
		errs = append(errs, &errors.NetworkError{Operation: "close socket", Err: err, Details: fmt.Sprintf("fd %d", s.FD)})
	}
	s.FD = -1
	return stderrors.Join(errs...)
}
