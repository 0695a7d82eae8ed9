// Package sock reads and writes connected stream sockets with a timeout
// and provides the multicast datagram socket used for discovery.
//
// Every system call goes through the umock facilities, so the timeout,
// interruption and broken-pipe paths can be driven from tests without
// a misbehaving peer.
package sock

import (
	"context"
	"crypto/tls"
	stderrors "errors"
	"fmt"
	"io"
	"net/netip"
	"os"
	"syscall"
	"time"

	"github.com/upnplib/upnplib-sub003/guard"
	"github.com/upnplib/upnplib-sub003/internal/errors"
	"github.com/upnplib/upnplib-sub003/umock"
)

// DefaultResponseTimeout bounds a Read or Write whose context carries no
// deadline and whose SockInfo has no Timeout.
const DefaultResponseTimeout = 30 * time.Second

var (
	// ErrTimedOut is returned when the socket did not become ready in time.
	ErrTimedOut = stderrors.New("sock: timed out")
	// ErrSocketWrite marks a write that failed after the socket was ready.
	ErrSocketWrite = stderrors.New("sock: write failed")
)

// SockInfo is a connected stream socket, optionally carrying TLS.
type SockInfo struct {
	// FD is the socket descriptor, -1 after Destroy.
	FD int
	// TLS carries all reads and writes when set.
	TLS *tls.Conn
	// Foreign is the peer address, if known.
	Foreign netip.AddrPort
	// Timeout replaces DefaultResponseTimeout when non-zero. A negative
	// value waits until the socket is ready.
	Timeout time.Duration
}

// New returns the SockInfo of a connected descriptor.
func New(fd int) *SockInfo {
	return &SockInfo{FD: fd}
}

// Read reads up to len(buf) bytes once the socket is readable. The wait
// ends at the context deadline or, without one, after the response
// timeout. A closed peer yields io.EOF.
func (s *SockInfo) Read(ctx context.Context, buf []byte) (int, error) {
	if err := s.check(ctx, "read socket"); err != nil {
		return 0, err
	}
	if len(buf) == 0 {
		return 0, nil
	}
	wait := s.wait(ctx)
	if s.TLS != nil {
		return s.readTLS(wait, buf)
	}
	return s.readFD(wait, buf)
}

// Write writes all of buf, waiting for the socket to become writable
// within the same bounds as Read. It returns the number of bytes written
// before a failure.
func (s *SockInfo) Write(ctx context.Context, buf []byte) (int, error) {
	if err := s.check(ctx, "write socket"); err != nil {
		return 0, err
	}
	if len(buf) == 0 {
		return 0, nil
	}
	wait := s.wait(ctx)
	if s.TLS != nil {
		return s.writeTLS(wait, buf)
	}
	return s.writeFD(wait, buf)
}

func (s *SockInfo) check(ctx context.Context, op string) error {
	if s == nil || (s.FD < 0 && s.TLS == nil) {
		return &errors.NetworkError{
			Operation: op,
			Err:       syscall.EBADF,
			Details:   "no socket",
		}
	}
	select {
	case <-ctx.Done():
		return &errors.NetworkError{
			Operation: op,
			Err:       ctx.Err(),
			Details:   "context canceled before " + op,
		}
	default:
	}
	return nil
}

// wait returns how long an operation may block. A negative result means
// no limit.
func (s *SockInfo) wait(ctx context.Context) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d > 0 {
			return d
		}
		return 0
	}
	if s.Timeout != 0 {
		return s.Timeout
	}
	return DefaultResponseTimeout
}

func timedOut(op string, fd int, wait time.Duration) error {
	return &errors.NetworkError{
		Operation: op,
		Err:       ErrTimedOut,
		Details:   fmt.Sprintf("fd %d not ready after %v", fd, wait),
	}
}

func (s *SockInfo) deadline(wait time.Duration) time.Time {
	if wait < 0 {
		return time.Time{}
	}
	return time.Now().Add(wait)
}

func (s *SockInfo) readTLS(wait time.Duration, buf []byte) (int, error) {
	if err := s.TLS.SetReadDeadline(s.deadline(wait)); err != nil {
		return 0, &errors.NetworkError{Operation: "set read timeout", Err: err}
	}
	n, err := umock.SslRead(s.TLS, buf)
	if stderrors.Is(err, os.ErrDeadlineExceeded) {
		return n, timedOut("read tls", s.FD, wait)
	}
	if err != nil {
		return n, &errors.NetworkError{Operation: "read tls", Err: err}
	}
	return n, nil
}

// writeTLS writes with SIGPIPE blocked: a TLS record write cannot pass
// MSG_NOSIGNAL.
func (s *SockInfo) writeTLS(wait time.Duration, buf []byte) (int, error) {
	g, err := guard.NewSigpipeGuard()
	if err != nil {
		return 0, &errors.NetworkError{Operation: "write tls", Err: err, Details: "cannot block SIGPIPE"}
	}
	defer func() { _ = g.Close() }()

	if err := s.TLS.SetWriteDeadline(s.deadline(wait)); err != nil {
		return 0, &errors.NetworkError{Operation: "set write timeout", Err: err}
	}
	sent := 0
	for sent < len(buf) {
		n, err := umock.SslWrite(s.TLS, buf[sent:])
		sent += n
		if err == nil && n == 0 {
			err = io.ErrShortWrite
		}
		if stderrors.Is(err, os.ErrDeadlineExceeded) {
			return sent, timedOut("write tls", s.FD, wait)
		}
		if err != nil {
			return sent, &errors.NetworkError{
				Operation: "write tls",
				Err:       fmt.Errorf("%w: %w", ErrSocketWrite, err),
				Details:   fmt.Sprintf("%d/%d bytes sent", sent, len(buf)),
			}
		}
	}
	return sent, nil
}
