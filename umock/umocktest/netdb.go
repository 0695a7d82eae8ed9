package umocktest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/upnplib/upnplib-sub003/umock"
)

// NetdbMock is a programmable umock.Netdb.
type NetdbMock struct {
	mock.Mock
}

var _ umock.Netdb = (*NetdbMock)(nil)

// NewNetdbMock injects a NetdbMock for the rest of the test.
func NewNetdbMock(t testing.TB) *NetdbMock {
	m := &NetdbMock{}
	inject[umock.Netdb](t, umock.NetdbSeam, m, &m.Mock)
	return m
}

func (m *NetdbMock) GetAddrInfo(ctx context.Context, node, service string, hints *umock.AddrInfoHints) ([]umock.AddrInfo, error) {
	args := m.Called(ctx, node, service, hints)
	res, _ := args.Get(0).([]umock.AddrInfo)
	return res, args.Error(1)
}

func (m *NetdbMock) FreeAddrInfo(res []umock.AddrInfo) {
	m.Called(res)
}
