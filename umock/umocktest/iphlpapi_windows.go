//go:build windows

package umocktest

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"golang.org/x/sys/windows"

	"github.com/upnplib/upnplib-sub003/umock"
)

// IphlpapiMock is a programmable umock.Iphlpapi.
type IphlpapiMock struct {
	mock.Mock
}

var _ umock.Iphlpapi = (*IphlpapiMock)(nil)

// NewIphlpapiMock injects an IphlpapiMock for the rest of the test.
func NewIphlpapiMock(t testing.TB) *IphlpapiMock {
	m := &IphlpapiMock{}
	inject[umock.Iphlpapi](t, umock.IphlpapiSeam, m, &m.Mock)
	return m
}

func (m *IphlpapiMock) GetAdaptersAddresses(family, flags uint32, adapters *windows.IpAdapterAddresses, size *uint32) error {
	return m.Called(family, flags, adapters, size).Error(0)
}
