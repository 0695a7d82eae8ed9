//go:build unix

package umocktest

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"golang.org/x/sys/unix"

	"github.com/upnplib/upnplib-sub003/umock"
)

// SysSocketMock is a programmable umock.SysSocket.
type SysSocketMock struct {
	mock.Mock
}

var _ umock.SysSocket = (*SysSocketMock)(nil)

// NewSysSocketMock injects a SysSocketMock for the rest of the test.
func NewSysSocketMock(t testing.TB) *SysSocketMock {
	m := &SysSocketMock{}
	inject[umock.SysSocket](t, umock.SysSocketSeam, m, &m.Mock)
	return m
}

func sockaddr(v any) unix.Sockaddr {
	sa, _ := v.(unix.Sockaddr)
	return sa
}

func (m *SysSocketMock) Socket(domain, typ, proto int) (int, error) {
	args := m.Called(domain, typ, proto)
	return args.Int(0), args.Error(1)
}

func (m *SysSocketMock) Bind(fd int, sa unix.Sockaddr) error { return m.Called(fd, sa).Error(0) }

func (m *SysSocketMock) Listen(fd int, backlog int) error { return m.Called(fd, backlog).Error(0) }

func (m *SysSocketMock) Accept(fd int) (int, unix.Sockaddr, error) {
	args := m.Called(fd)
	return args.Int(0), sockaddr(args.Get(1)), args.Error(2)
}

func (m *SysSocketMock) Connect(fd int, sa unix.Sockaddr) error { return m.Called(fd, sa).Error(0) }

// Recv copies the string or []byte programmed as third return value into p
// when present.
func (m *SysSocketMock) Recv(fd int, p []byte, flags int) (int, error) {
	args := m.Called(fd, p, flags)
	if len(args) > 2 {
		switch data := args.Get(2).(type) {
		case []byte:
			copy(p, data)
		case string:
			copy(p, data)
		}
	}
	return args.Int(0), args.Error(1)
}

func (m *SysSocketMock) Recvfrom(fd int, p []byte, flags int) (int, unix.Sockaddr, error) {
	args := m.Called(fd, p, flags)
	return args.Int(0), sockaddr(args.Get(1)), args.Error(2)
}

func (m *SysSocketMock) Send(fd int, p []byte, flags int) (int, error) {
	args := m.Called(fd, p, flags)
	return args.Int(0), args.Error(1)
}

func (m *SysSocketMock) Sendto(fd int, p []byte, flags int, to unix.Sockaddr) error {
	return m.Called(fd, p, flags, to).Error(0)
}

func (m *SysSocketMock) GetsockoptInt(fd, level, opt int) (int, error) {
	args := m.Called(fd, level, opt)
	return args.Int(0), args.Error(1)
}

func (m *SysSocketMock) SetsockoptInt(fd, level, opt, value int) error {
	return m.Called(fd, level, opt, value).Error(0)
}

func (m *SysSocketMock) Getsockname(fd int) (unix.Sockaddr, error) {
	args := m.Called(fd)
	return sockaddr(args.Get(0)), args.Error(1)
}

func (m *SysSocketMock) Shutdown(fd int, how int) error { return m.Called(fd, how).Error(0) }

func (m *SysSocketMock) Close(fd int) error { return m.Called(fd).Error(0) }

// SysSelectMock is a programmable umock.SysSelect.
type SysSelectMock struct {
	mock.Mock
}

var _ umock.SysSelect = (*SysSelectMock)(nil)

// NewSysSelectMock injects a SysSelectMock for the rest of the test.
func NewSysSelectMock(t testing.TB) *SysSelectMock {
	m := &SysSelectMock{}
	inject[umock.SysSelect](t, umock.SysSelectSeam, m, &m.Mock)
	return m
}

func (m *SysSelectMock) Poll(fds []unix.PollFd, timeout int) (int, error) {
	args := m.Called(fds, timeout)
	return args.Int(0), args.Error(1)
}

// PupnpSockMock is a programmable umock.PupnpSock.
type PupnpSockMock struct {
	mock.Mock
}

var _ umock.PupnpSock = (*PupnpSockMock)(nil)

// NewPupnpSockMock injects a PupnpSockMock for the rest of the test.
func NewPupnpSockMock(t testing.TB) *PupnpSockMock {
	m := &PupnpSockMock{}
	inject[umock.PupnpSock](t, umock.PupnpSockSeam, m, &m.Mock)
	return m
}

func (m *PupnpSockMock) MakeBlocking(fd int) error { return m.Called(fd).Error(0) }

func (m *PupnpSockMock) MakeNonBlocking(fd int) error { return m.Called(fd).Error(0) }
