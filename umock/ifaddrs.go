package umock

import "net"

// IfAddr is one address of one network interface, the counterpart of a
// struct ifaddrs node. Interfaces without addresses appear once with a
// nil Addr.
type IfAddr struct {
	Interface net.Interface
	Addr      net.Addr
}

// Ifaddrs is the interface enumeration facility.
type Ifaddrs interface {
	GetIfAddrs() ([]IfAddr, error)
	FreeIfAddrs(ifa []IfAddr)
}

// IfaddrsReal enumerates interfaces with package net.
type IfaddrsReal struct{}

func (IfaddrsReal) GetIfAddrs() ([]IfAddr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	var out []IfAddr
	for _, ifi := range ifaces {
		addrs, err := ifi.Addrs()
		if err != nil {
			return nil, err
		}
		if len(addrs) == 0 {
			out = append(out, IfAddr{Interface: ifi})
			continue
		}
		for _, a := range addrs {
			out = append(out, IfAddr{Interface: ifi, Addr: a})
		}
	}
	return out, nil
}

func (IfaddrsReal) FreeIfAddrs([]IfAddr) {}

// IfaddrsSeam is the active-implementation pointer of the Ifaddrs facility.
var IfaddrsSeam = NewSeam[Ifaddrs]("ifaddrs", IfaddrsReal{})

// GetIfAddrs enumerates interface addresses with the current Ifaddrs.
func GetIfAddrs() ([]IfAddr, error) {
	return IfaddrsSeam.Current().GetIfAddrs()
}

// FreeIfAddrs releases a GetIfAddrs result with the current Ifaddrs.
func FreeIfAddrs(ifa []IfAddr) {
	IfaddrsSeam.Current().FreeIfAddrs(ifa)
}
