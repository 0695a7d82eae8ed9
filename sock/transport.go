package sock

import (
	"context"
	"net"
)

// Transport sends and receives datagrams. PacketSock implements it;
// tests substitute their own.
type Transport interface {
	// Send transmits packet to dest. It fails with a NetworkError on a
	// canceled context or a short write.
	Send(ctx context.Context, packet []byte, dest net.Addr) error

	// Receive waits for the next datagram. The wait ends at the context
	// deadline. interfaceIndex is the index of the receiving interface, or
	// 0 when the platform does not report it.
	Receive(ctx context.Context) (packet []byte, srcAddr net.Addr, interfaceIndex int, err error)

	// Close releases the socket and reports close failures.
	Close() error
}
