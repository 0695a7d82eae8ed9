package umock

import (
	"fmt"
	"net/netip"
	"syscall"
)

// ArpaInet converts binary addresses to presentation format.
type ArpaInet interface {
	// InetNtop formats src, an address of the given family (syscall.AF_INET
	// or syscall.AF_INET6) in network byte order.
	InetNtop(family int, src []byte) (string, error)
}

// ArpaInetReal formats addresses with net/netip.
type ArpaInetReal struct{}

func (ArpaInetReal) InetNtop(family int, src []byte) (string, error) {
	switch family {
	case syscall.AF_INET:
		if len(src) != 4 {
			return "", fmt.Errorf("inet_ntop: %d byte source for AF_INET: %w", len(src), syscall.ENOSPC)
		}
		return netip.AddrFrom4([4]byte(src)).String(), nil
	case syscall.AF_INET6:
		if len(src) != 16 {
			return "", fmt.Errorf("inet_ntop: %d byte source for AF_INET6: %w", len(src), syscall.ENOSPC)
		}
		return netip.AddrFrom16([16]byte(src)).String(), nil
	default:
		return "", fmt.Errorf("inet_ntop: address family %d: %w", family, syscall.EAFNOSUPPORT)
	}
}

// ArpaInetSeam is the active-implementation pointer of the ArpaInet facility.
var ArpaInetSeam = NewSeam[ArpaInet]("arpa_inet", ArpaInetReal{})

// InetNtop formats a binary address with the current ArpaInet.
func InetNtop(family int, src []byte) (string, error) {
	return ArpaInetSeam.Current().InetNtop(family, src)
}
