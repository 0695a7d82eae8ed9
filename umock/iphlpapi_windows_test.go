//go:build windows

package umock

import (
	"testing"
	"unsafe"

	"golang.org/x/sys/windows"
)

// TestGetAdaptersAddresses_Windows verifies that the facade reports the
// required buffer size and then fills it, as windows.GetAdaptersAddresses
// does.
func TestGetAdaptersAddresses_Windows(t *testing.T) {
	var size uint32
	err := GetAdaptersAddresses(windows.AF_UNSPEC, windows.GAA_FLAG_INCLUDE_PREFIX, nil, &size)
	if err != windows.ERROR_BUFFER_OVERFLOW {
		t.Fatalf("GetAdaptersAddresses(nil) error = %v, want ERROR_BUFFER_OVERFLOW", err)
	}
	if size == 0 {
		t.Fatal("GetAdaptersAddresses(nil) reported size 0")
	}

	buf := make([]byte, size)
	first := (*windows.IpAdapterAddresses)(unsafe.Pointer(&buf[0]))
	if err := GetAdaptersAddresses(windows.AF_UNSPEC, windows.GAA_FLAG_INCLUDE_PREFIX, first, &size); err != nil {
		t.Fatalf("GetAdaptersAddresses() error = %v, want nil", err)
	}
	n := 0
	for aa := first; aa != nil; aa = aa.Next {
		n++
	}
	t.Logf("%d adapters", n)
}
