package sock

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/net/ipv4"

	"github.com/upnplib/upnplib-sub003/internal/errors"
	"github.com/upnplib/upnplib-sub003/umock"
	"github.com/upnplib/upnplib-sub003/upnpdebug"
)

// SSDP multicast group and port.
const (
	SSDPMulticastAddr = "239.255.255.250"
	SSDPPort          = 1900
)

// multicastTTL is the hop limit of outgoing SSDP datagrams.
const multicastTTL = 4

// PacketSock is an IPv4 UDP socket that joins the SSDP multicast group
// and reports which interface each datagram arrived on.
type PacketSock struct {
	conn     net.PacketConn
	ipv4Conn *ipv4.PacketConn

	group  *net.UDPAddr
	ifi    *net.Interface
	listen string
}

var _ Transport = (*PacketSock)(nil)

// PacketOption configures NewPacketSock.
type PacketOption func(*PacketSock) error

// WithInterface restricts multicast to the named interface. The name is
// resolved through the NetIf facility.
func WithInterface(name string) PacketOption {
	return func(s *PacketSock) error {
		idx := umock.IfNameToIndex(name)
		if idx == 0 {
			return &errors.ValidationError{Field: "interface", Value: name, Message: "no such interface"}
		}
		ifi, err := net.InterfaceByIndex(int(idx))
		if err != nil {
			return &errors.NetworkError{
				Operation: "lookup interface",
				Err:       err,
				Details:   fmt.Sprintf("%s has index %d", name, idx),
			}
		}
		s.ifi = ifi
		return nil
	}
}

// WithGroup replaces the SSDP multicast group, given as "host:port".
func WithGroup(addr string) PacketOption {
	return func(s *PacketSock) error {
		group, err := net.ResolveUDPAddr("udp4", addr)
		if err != nil {
			return &errors.NetworkError{Operation: "resolve multicast address", Err: err, Details: addr}
		}
		if !group.IP.IsMulticast() {
			return &errors.ValidationError{Field: "group", Value: addr, Message: "not a multicast address"}
		}
		s.group = group
		return nil
	}
}

// WithListenAddr binds a unicast socket on addr instead of joining the
// multicast group, as used for M-SEARCH replies.
func WithListenAddr(addr string) PacketOption {
	return func(s *PacketSock) error {
		s.listen = addr
		return nil
	}
}

// NewPacketSock opens the socket. Without WithListenAddr it binds the
// group port and joins the group.
func NewPacketSock(opts ...PacketOption) (*PacketSock, error) {
	s := &PacketSock{}
	if err := WithGroup(net.JoinHostPort(SSDPMulticastAddr, strconv.Itoa(SSDPPort)))(s); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	var err error
	if s.listen != "" {
		s.conn, err = net.ListenPacket("udp4", s.listen)
	} else {
		s.conn, err = net.ListenMulticastUDP("udp4", s.ifi, s.group)
	}
	if err != nil {
		return nil, &errors.NetworkError{
			Operation: "create socket",
			Err:       err,
			Details:   fmt.Sprintf("failed to bind %s", s.bindDesc()),
		}
	}
	if uc, ok := s.conn.(*net.UDPConn); ok {
		if err := uc.SetReadBuffer(65536); err != nil {
			_ = s.conn.Close()
			return nil, &errors.NetworkError{
				Operation: "configure socket",
				Err:       err,
				Details:   "failed to set read buffer size",
			}
		}
	}

	s.ipv4Conn = ipv4.NewPacketConn(s.conn)
	log := upnpdebug.Logger(upnpdebug.SSDP)
	if s.listen == "" {
		if s.ifi != nil {
			if err := s.ipv4Conn.SetMulticastInterface(s.ifi); err != nil {
				log.Info("cannot select multicast interface", zap.String("interface", s.ifi.Name), zap.Error(err))
			}
		}
		if err := s.ipv4Conn.SetMulticastTTL(multicastTTL); err != nil {
			log.Info("cannot set multicast TTL", zap.Error(err))
		}
	}
	// Not every platform delivers the interface index; Receive then
	// reports 0.
	if err := s.ipv4Conn.SetControlMessage(ipv4.FlagInterface, true); err != nil {
		log.Debug("interface control messages unavailable", zap.Error(err))
	}
	return s, nil
}

func (s *PacketSock) bindDesc() string {
	if s.listen != "" {
		return s.listen
	}
	return s.group.String()
}

// LocalAddr returns the bound address.
func (s *PacketSock) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

// Group returns the multicast group the socket sends announcements to.
func (s *PacketSock) Group() *net.UDPAddr {
	return s.group
}

// Send transmits packet to dest.
func (s *PacketSock) Send(ctx context.Context, packet []byte, dest net.Addr) error {
	select {
	case <-ctx.Done():
		return &errors.NetworkError{
			Operation: "send datagram",
			Err:       ctx.Err(),
			Details:   "context canceled before send",
		}
	default:
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.conn.SetWriteDeadline(deadline); err != nil {
			return &errors.NetworkError{Operation: "set write timeout", Err: err}
		}
	}

	n, err := s.conn.WriteTo(packet, dest)
	if err != nil {
		return &errors.NetworkError{
			Operation: "send datagram",
			Err:       err,
			Details:   fmt.Sprintf("failed to send %d bytes to %s", len(packet), dest),
		}
	}
	if n != len(packet) {
		return &errors.NetworkError{
			Operation: "send datagram",
			Err:       fmt.Errorf("partial write: %d/%d bytes", n, len(packet)),
			Details:   "incomplete transmission",
		}
	}
	return nil
}

// Receive returns a copy of the next datagram together with its source
// and the index of the interface it arrived on.
func (s *PacketSock) Receive(ctx context.Context) ([]byte, net.Addr, int, error) {
	select {
	case <-ctx.Done():
		return nil, nil, 0, &errors.NetworkError{
			Operation: "receive datagram",
			Err:       ctx.Err(),
			Details:   "context canceled before receive",
		}
	default:
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.conn.SetReadDeadline(deadline); err != nil {
			return nil, nil, 0, &errors.NetworkError{
				Operation: "set read timeout",
				Err:       err,
				Details:   fmt.Sprintf("failed to set deadline %v", deadline),
			}
		}
	}

	bufPtr := GetBuffer()
	defer PutBuffer(bufPtr)
	buffer := *bufPtr

	n, cm, src, err := s.ipv4Conn.ReadFrom(buffer)
	if err != nil {
		var netErr net.Error
		if stderrors.As(err, &netErr) && netErr.Timeout() {
			return nil, nil, 0, &errors.NetworkError{
				Operation: "receive datagram",
				Err:       fmt.Errorf("%w: %w", ErrTimedOut, err),
				Details:   "timeout",
			}
		}
		return nil, nil, 0, &errors.NetworkError{
			Operation: "receive datagram",
			Err:       err,
			Details:   "failed to read from socket",
		}
	}

	ifIndex := 0
	if cm != nil {
		ifIndex = cm.IfIndex
	}
	out := make([]byte, n)
	copy(out, buffer[:n])
	return out, src, ifIndex, nil
}

// Close releases the socket.
func (s *PacketSock) Close() error {
	if s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return &errors.NetworkError{
			Operation: "close socket",
			Err:       err,
			Details:   "failed to close UDP connection",
		}
	}
	return nil
}
