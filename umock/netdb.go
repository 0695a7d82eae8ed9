package umock

import (
	"context"
	"net"
	"net/netip"
	"strconv"
)

// AddrInfo is one entry of a name resolution result, the counterpart of a
// struct addrinfo node.
type AddrInfo struct {
	// Network is the network the entry is usable with, e.g. "tcp4" or "udp6".
	Network string
	// Addr holds the resolved address and service port.
	Addr netip.AddrPort
	// CanonName is set on the first entry when AddrInfoHints.CanonName was
	// requested.
	CanonName string
}

// AddrInfoHints narrows a GetAddrInfo call. A nil hints value resolves
// both address families for "tcp".
type AddrInfoHints struct {
	// Network selects protocol and family: "tcp", "tcp4", "tcp6", "udp",
	// "udp4" or "udp6". Empty means "tcp".
	Network string
	// Passive returns the unspecified address for an empty node, as used
	// for binding. Without it an empty node yields the loopback address.
	Passive bool
	// NumericHost forbids name lookups; node must be an address literal.
	NumericHost bool
	// NumericServ forbids service lookups; service must be a port number.
	NumericServ bool
	// CanonName requests the canonical name of node.
	CanonName bool
}

// Netdb is the name resolution facility.
type Netdb interface {
	GetAddrInfo(ctx context.Context, node, service string, hints *AddrInfoHints) ([]AddrInfo, error)
	FreeAddrInfo(res []AddrInfo)
}

// NetdbReal resolves through a net.Resolver. The zero value uses
// net.DefaultResolver.
type NetdbReal struct {
	Resolver *net.Resolver
}

func (r NetdbReal) resolver() *net.Resolver {
	if r.Resolver != nil {
		return r.Resolver
	}
	return net.DefaultResolver
}

// GetAddrInfo resolves node and service. Go has no single getaddrinfo entry
// point, so host and port are resolved separately and combined per family.
func (r NetdbReal) GetAddrInfo(ctx context.Context, node, service string, hints *AddrInfoHints) ([]AddrInfo, error) {
	var h AddrInfoHints
	if hints != nil {
		h = *hints
	}
	proto, family := splitNetwork(h.Network)

	port, err := r.lookupPort(ctx, proto, service, h.NumericServ)
	if err != nil {
		return nil, err
	}

	addrs, err := r.lookupHost(ctx, family, node, h)
	if err != nil {
		return nil, err
	}

	res := make([]AddrInfo, 0, len(addrs))
	for _, a := range addrs {
		a = a.Unmap()
		if (family == "4" && !a.Is4()) || (family == "6" && !a.Is6()) {
			continue
		}
		netw := proto + "6"
		if a.Is4() {
			netw = proto + "4"
		}
		res = append(res, AddrInfo{Network: netw, Addr: netip.AddrPortFrom(a, port)})
	}
	if len(res) == 0 {
		return nil, &net.DNSError{Err: "no such host", Name: node, IsNotFound: true}
	}
	if h.CanonName && node != "" {
		if cname, err := r.resolver().LookupCNAME(ctx, node); err == nil {
			res[0].CanonName = cname
		}
	}
	return res, nil
}

func (r NetdbReal) lookupPort(ctx context.Context, proto, service string, numeric bool) (uint16, error) {
	if service == "" {
		return 0, nil
	}
	if p, err := strconv.ParseUint(service, 10, 16); err == nil {
		return uint16(p), nil
	}
	if numeric {
		return 0, &net.AddrError{Err: "invalid port", Addr: service}
	}
	p, err := r.resolver().LookupPort(ctx, proto, service)
	if err != nil {
		return 0, err
	}
	return uint16(p), nil
}

func (r NetdbReal) lookupHost(ctx context.Context, family, node string, h AddrInfoHints) ([]netip.Addr, error) {
	if node == "" {
		switch {
		case h.Passive && family == "4":
			return []netip.Addr{netip.IPv4Unspecified()}, nil
		case h.Passive:
			return []netip.Addr{netip.IPv6Unspecified(), netip.IPv4Unspecified()}, nil
		case family == "4":
			return []netip.Addr{netip.AddrFrom4([4]byte{127, 0, 0, 1})}, nil
		default:
			return []netip.Addr{netip.IPv6Loopback(), netip.AddrFrom4([4]byte{127, 0, 0, 1})}, nil
		}
	}
	if a, err := netip.ParseAddr(node); err == nil {
		return []netip.Addr{a}, nil
	}
	if h.NumericHost {
		return nil, &net.DNSError{Err: "non-numeric host with numeric hint", Name: node, IsNotFound: true}
	}
	return r.resolver().LookupNetIP(ctx, "ip"+family, node)
}

// FreeAddrInfo exists for symmetry with GetAddrInfo; results are garbage
// collected.
func (NetdbReal) FreeAddrInfo([]AddrInfo) {}

// splitNetwork returns the protocol and family of a hints network.
func splitNetwork(network string) (proto, family string) {
	switch network {
	case "tcp4", "udp4":
		return network[:3], "4"
	case "tcp6", "udp6":
		return network[:3], "6"
	case "udp":
		return "udp", ""
	default:
		return "tcp", ""
	}
}

// NetdbSeam is the active-implementation pointer of the Netdb facility.
var NetdbSeam = NewSeam[Netdb]("netdb", NetdbReal{})

// GetAddrInfo resolves node and service with the current Netdb.
func GetAddrInfo(ctx context.Context, node, service string, hints *AddrInfoHints) ([]AddrInfo, error) {
	return NetdbSeam.Current().GetAddrInfo(ctx, node, service, hints)
}

// FreeAddrInfo releases a GetAddrInfo result with the current Netdb.
func FreeAddrInfo(res []AddrInfo) {
	NetdbSeam.Current().FreeAddrInfo(res)
}
