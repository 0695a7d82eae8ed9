// Package umocktest provides test doubles for the umock facilities.
//
// Every New…Mock constructor injects the double into its facility's seam
// and registers the restore with t.Cleanup, so doubles created later in a
// test are restored first:
//
//	func TestResolve(t *testing.T) {
//	    netdb := umocktest.NewNetdbMock(t)
//	    netdb.On("GetAddrInfo", mock.Anything, "example.com", "80", mock.Anything).
//	        Return(addrs, nil)
//	    ...
//	}
//
// Expectations set with On are asserted when the test finishes.
package umocktest

import (
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/upnplib/upnplib-sub003/umock"
)

// inject installs impl into s for the rest of the test. When m is not nil
// its expectations are asserted after the seam has been restored.
func inject[T any](t testing.TB, s *umock.Seam[T], impl T, m *mock.Mock) {
	t.Helper()
	if m != nil {
		m.Test(t)
	}
	inj := s.Inject(impl)
	t.Cleanup(func() {
		inj.Restore()
		if m != nil {
			m.AssertExpectations(t)
		}
	})
}
