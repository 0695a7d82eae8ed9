package umocktest

import (
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/upnplib/upnplib-sub003/umock"
)

// IfaddrsMock is a programmable umock.Ifaddrs.
type IfaddrsMock struct {
	mock.Mock
}

var _ umock.Ifaddrs = (*IfaddrsMock)(nil)

// NewIfaddrsMock injects an IfaddrsMock for the rest of the test.
func NewIfaddrsMock(t testing.TB) *IfaddrsMock {
	m := &IfaddrsMock{}
	inject[umock.Ifaddrs](t, umock.IfaddrsSeam, m, &m.Mock)
	return m
}

func (m *IfaddrsMock) GetIfAddrs() ([]umock.IfAddr, error) {
	args := m.Called()
	res, _ := args.Get(0).([]umock.IfAddr)
	return res, args.Error(1)
}

func (m *IfaddrsMock) FreeIfAddrs(ifa []umock.IfAddr) {
	m.Called(ifa)
}

// NetIfMock is a programmable umock.NetIf.
type NetIfMock struct {
	mock.Mock
}

var _ umock.NetIf = (*NetIfMock)(nil)

// NewNetIfMock injects a NetIfMock for the rest of the test.
func NewNetIfMock(t testing.TB) *NetIfMock {
	m := &NetIfMock{}
	inject[umock.NetIf](t, umock.NetIfSeam, m, &m.Mock)
	return m
}

func (m *NetIfMock) IfNameToIndex(name string) uint {
	return m.Called(name).Get(0).(uint)
}

// ArpaInetMock is a programmable umock.ArpaInet.
type ArpaInetMock struct {
	mock.Mock
}

var _ umock.ArpaInet = (*ArpaInetMock)(nil)

// NewArpaInetMock injects an ArpaInetMock for the rest of the test.
func NewArpaInetMock(t testing.TB) *ArpaInetMock {
	m := &ArpaInetMock{}
	inject[umock.ArpaInet](t, umock.ArpaInetSeam, m, &m.Mock)
	return m
}

func (m *ArpaInetMock) InetNtop(family int, src []byte) (string, error) {
	args := m.Called(family, src)
	return args.String(0), args.Error(1)
}
