package umock

import "net"

// NetIf maps interface names to indexes.
type NetIf interface {
	// IfNameToIndex returns the index of the named interface, or 0 if
	// there is no such interface.
	IfNameToIndex(name string) uint
}

// NetIfReal looks interfaces up with package net.
type NetIfReal struct{}

func (NetIfReal) IfNameToIndex(name string) uint {
	ifi, err := net.InterfaceByName(name)
	if err != nil {
		return 0
	}
	return uint(ifi.Index)
}

// NetIfSeam is the active-implementation pointer of the NetIf facility.
var NetIfSeam = NewSeam[NetIf]("net_if", NetIfReal{})

// IfNameToIndex maps an interface name to its index with the current NetIf.
func IfNameToIndex(name string) uint {
	return NetIfSeam.Current().IfNameToIndex(name)
}
