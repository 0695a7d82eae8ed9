package sock

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"

	"github.com/upnplib/upnplib-sub003/internal/errors"
	"github.com/upnplib/upnplib-sub003/umock/umocktest"
)

func newLoopbackSock(t *testing.T) *PacketSock {
	t.Helper()
	if !nettest.TestableNetwork("udp4") {
		t.Skip("udp4 not testable")
	}
	s, err := NewPacketSock(WithListenAddr("127.0.0.1:0"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPacketSock_SendReceive(t *testing.T) {
	rx := newLoopbackSock(t)
	tx := newLoopbackSock(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg := []byte("M-SEARCH * HTTP/1.1\r\nHOST: 239.255.255.250:1900\r\n\r\n")
	require.NoError(t, tx.Send(ctx, msg, rx.LocalAddr()))

	got, src, ifIndex, err := rx.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
	assert.Equal(t, tx.LocalAddr().String(), src.String())

	// Zero means the platform did not report the interface.
	if ifIndex != 0 {
		lo, err := nettest.LoopbackInterface()
		require.NoError(t, err)
		assert.Equal(t, lo.Index, ifIndex)
	}
}

func TestPacketSock_ReceiveTimeout(t *testing.T) {
	s := newLoopbackSock(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, _, _, err := s.Receive(ctx)
	assert.ErrorIs(t, err, ErrTimedOut)

	var netErr *errors.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "receive datagram", netErr.Operation)
}

func TestPacketSock_CanceledContext(t *testing.T) {
	s := newLoopbackSock(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := s.Receive(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	err = s.Send(ctx, []byte("x"), s.LocalAddr())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPacketSock_CloseTwice(t *testing.T) {
	s := newLoopbackSock(t)
	require.NoError(t, s.Close())
	assert.Error(t, s.Close())
	assert.NoError(t, (&PacketSock{}).Close())
}

func TestPacketSock_DefaultGroup(t *testing.T) {
	s := &PacketSock{}
	require.NoError(t, WithGroup("239.255.255.250:1900")(s))
	assert.True(t, s.Group().IP.Equal(net.IPv4(239, 255, 255, 250)))
	assert.Equal(t, SSDPPort, s.Group().Port)
}

func TestPacketSock_Options(t *testing.T) {
	t.Run("unicast group", func(t *testing.T) {
		_, err := NewPacketSock(WithGroup("192.168.1.1:1900"))
		var valErr *errors.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "group", valErr.Field)
	})

	t.Run("unresolvable group", func(t *testing.T) {
		_, err := NewPacketSock(WithGroup("not an address"))
		var netErr *errors.NetworkError
		assert.ErrorAs(t, err, &netErr)
	})

	t.Run("unknown interface", func(t *testing.T) {
		nif := umocktest.NewNetIfMock(t)
		nif.On("IfNameToIndex", "eth9").Return(uint(0)).Once()

		_, err := NewPacketSock(WithInterface("eth9"))
		var valErr *errors.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "eth9", valErr.Value)
	})

	t.Run("loopback interface", func(t *testing.T) {
		lo, err := nettest.LoopbackInterface()
		if err != nil {
			t.Skip("no loopback interface")
		}
		nif := umocktest.NewNetIfMock(t)
		nif.On("IfNameToIndex", "loop").Return(uint(lo.Index)).Once()

		s := &PacketSock{}
		require.NoError(t, WithInterface("loop")(s))
		assert.Equal(t, lo.Name, s.ifi.Name)
	})
}
