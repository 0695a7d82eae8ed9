package sock

import (
	"fmt"
	"net"

	"github.com/upnplib/upnplib-sub003/internal/errors"
	"github.com/upnplib/upnplib-sub003/umock"
)

// IPv4ForInterface returns the first IPv4 address of the interface with
// the given index, enumerated through the Ifaddrs facility.
func IPv4ForInterface(index int) (net.IP, error) {
	ifa, err := umock.GetIfAddrs()
	if err != nil {
		return nil, &errors.NetworkError{
			Operation: "get interface addresses",
			Err:       err,
			Details:   fmt.Sprintf("interface index %d", index),
		}
	}
	defer umock.FreeIfAddrs(ifa)

	found := false
	for _, a := range ifa {
		if a.Interface.Index != index {
			continue
		}
		found = true
		var ip net.IP
		switch v := a.Addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip4 := ip.To4(); ip4 != nil {
			return ip4, nil
		}
	}
	if !found {
		return nil, &errors.NetworkError{
			Operation: "lookup interface",
			Err:       fmt.Errorf("interface index %d not found", index),
		}
	}
	return nil, &errors.ValidationError{
		Field:   "interface",
		Value:   index,
		Message: "no IPv4 address found on interface",
	}
}
