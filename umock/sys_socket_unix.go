//go:build unix

package umock

import "golang.org/x/sys/unix"

// SysSocket is the BSD socket facility on raw file descriptors.
type SysSocket interface {
	Socket(domain, typ, proto int) (int, error)
	Bind(fd int, sa unix.Sockaddr) error
	Listen(fd int, backlog int) error
	Accept(fd int) (int, unix.Sockaddr, error)
	Connect(fd int, sa unix.Sockaddr) error
	Recv(fd int, p []byte, flags int) (int, error)
	Recvfrom(fd int, p []byte, flags int) (int, unix.Sockaddr, error)
	Send(fd int, p []byte, flags int) (int, error)
	Sendto(fd int, p []byte, flags int, to unix.Sockaddr) error
	GetsockoptInt(fd, level, opt int) (int, error)
	SetsockoptInt(fd, level, opt, value int) error
	Getsockname(fd int) (unix.Sockaddr, error)
	Shutdown(fd int, how int) error
	Close(fd int) error
}

// SysSocketReal forwards to golang.org/x/sys/unix.
type SysSocketReal struct{}

func (SysSocketReal) Socket(domain, typ, proto int) (int, error) {
	return unix.Socket(domain, typ, proto)
}

func (SysSocketReal) Bind(fd int, sa unix.Sockaddr) error { return unix.Bind(fd, sa) }

func (SysSocketReal) Listen(fd int, backlog int) error { return unix.Listen(fd, backlog) }

func (SysSocketReal) Accept(fd int) (int, unix.Sockaddr, error) { return unix.Accept(fd) }

func (SysSocketReal) Connect(fd int, sa unix.Sockaddr) error { return unix.Connect(fd, sa) }

func (SysSocketReal) Recv(fd int, p []byte, flags int) (int, error) {
	n, _, err := unix.Recvfrom(fd, p, flags)
	return n, err
}

func (SysSocketReal) Recvfrom(fd int, p []byte, flags int) (int, unix.Sockaddr, error) {
	return unix.Recvfrom(fd, p, flags)
}

func (SysSocketReal) Send(fd int, p []byte, flags int) (int, error) {
	return unix.SendmsgN(fd, p, nil, nil, flags)
}

func (SysSocketReal) Sendto(fd int, p []byte, flags int, to unix.Sockaddr) error {
	return unix.Sendto(fd, p, flags, to)
}

func (SysSocketReal) GetsockoptInt(fd, level, opt int) (int, error) {
	return unix.GetsockoptInt(fd, level, opt)
}

func (SysSocketReal) SetsockoptInt(fd, level, opt, value int) error {
	return unix.SetsockoptInt(fd, level, opt, value)
}

func (SysSocketReal) Getsockname(fd int) (unix.Sockaddr, error) { return unix.Getsockname(fd) }

func (SysSocketReal) Shutdown(fd int, how int) error { return unix.Shutdown(fd, how) }

func (SysSocketReal) Close(fd int) error { return unix.Close(fd) }

// SysSocketSeam is the active-implementation pointer of the SysSocket facility.
var SysSocketSeam = NewSeam[SysSocket]("sys_socket", SysSocketReal{})

func Socket(domain, typ, proto int) (int, error) {
	return SysSocketSeam.Current().Socket(domain, typ, proto)
}

func Bind(fd int, sa unix.Sockaddr) error { return SysSocketSeam.Current().Bind(fd, sa) }

func Listen(fd int, backlog int) error { return SysSocketSeam.Current().Listen(fd, backlog) }

func Accept(fd int) (int, unix.Sockaddr, error) { return SysSocketSeam.Current().Accept(fd) }

func Connect(fd int, sa unix.Sockaddr) error { return SysSocketSeam.Current().Connect(fd, sa) }

func Recv(fd int, p []byte, flags int) (int, error) {
	return SysSocketSeam.Current().Recv(fd, p, flags)
}

func Recvfrom(fd int, p []byte, flags int) (int, unix.Sockaddr, error) {
	return SysSocketSeam.Current().Recvfrom(fd, p, flags)
}

func Send(fd int, p []byte, flags int) (int, error) {
	return SysSocketSeam.Current().Send(fd, p, flags)
}

func Sendto(fd int, p []byte, flags int, to unix.Sockaddr) error {
	return SysSocketSeam.Current().Sendto(fd, p, flags, to)
}

func GetsockoptInt(fd, level, opt int) (int, error) {
	return SysSocketSeam.Current().GetsockoptInt(fd, level, opt)
}

func SetsockoptInt(fd, level, opt, value int) error {
	return SysSocketSeam.Current().SetsockoptInt(fd, level, opt, value)
}

func Getsockname(fd int) (unix.Sockaddr, error) { return SysSocketSeam.Current().Getsockname(fd) }

func Shutdown(fd int, how int) error { return SysSocketSeam.Current().Shutdown(fd, how) }

// CloseSocket closes a socket descriptor with the current SysSocket.
func CloseSocket(fd int) error { return SysSocketSeam.Current().Close(fd) }
