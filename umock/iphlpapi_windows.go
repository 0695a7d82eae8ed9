//go:build windows

package umock

import "golang.org/x/sys/windows"

// Iphlpapi enumerates network adapters on Windows.
type Iphlpapi interface {
	GetAdaptersAddresses(family, flags uint32, adapters *windows.IpAdapterAddresses, size *uint32) error
}

// IphlpapiReal forwards to windows.GetAdaptersAddresses.
type IphlpapiReal struct{}

func (IphlpapiReal) GetAdaptersAddresses(family, flags uint32, adapters *windows.IpAdapterAddresses, size *uint32) error {
	return windows.GetAdaptersAddresses(family, flags, 0, adapters, size)
}

// IphlpapiSeam is the active-implementation pointer of the Iphlpapi facility.
var IphlpapiSeam = NewSeam[Iphlpapi]("iphlpapi", IphlpapiReal{})

// GetAdaptersAddresses enumerates adapters with the current Iphlpapi.
func GetAdaptersAddresses(family, flags uint32, adapters *windows.IpAdapterAddresses, size *uint32) error {
	return IphlpapiSeam.Current().GetAdaptersAddresses(family, flags, adapters, size)
}
