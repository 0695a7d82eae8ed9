package umock

import (
	"context"
	"net"
	"net/netip"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAddrInfo_Numeric(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		node    string
		service string
		hints   *AddrInfoHints
		want    []AddrInfo
		wantErr bool
	}{
		{
			name:    "ipv4 literal",
			node:    "192.168.1.10",
			service: "80",
			want:    []AddrInfo{{Network: "tcp4", Addr: netip.MustParseAddrPort("192.168.1.10:80")}},
		},
		{
			name:    "ipv6 literal udp",
			node:    "::1",
			service: "1900",
			hints:   &AddrInfoHints{Network: "udp"},
			want:    []AddrInfo{{Network: "udp6", Addr: netip.MustParseAddrPort("[::1]:1900")}},
		},
		{
			name:    "passive ipv4",
			service: "49152",
			hints:   &AddrInfoHints{Network: "tcp4", Passive: true},
			want:    []AddrInfo{{Network: "tcp4", Addr: netip.MustParseAddrPort("0.0.0.0:49152")}},
		},
		{
			name:  "loopback ipv4 without node",
			hints: &AddrInfoHints{Network: "udp4"},
			want:  []AddrInfo{{Network: "udp4", Addr: netip.MustParseAddrPort("127.0.0.1:0")}},
		},
		{
			name:    "family mismatch",
			node:    "::1",
			hints:   &AddrInfoHints{Network: "tcp4"},
			wantErr: true,
		},
		{
			name:    "numeric host hint rejects names",
			node:    "example.com",
			hints:   &AddrInfoHints{NumericHost: true},
			wantErr: true,
		},
		{
			name:    "numeric service hint rejects names",
			node:    "127.0.0.1",
			service: "http",
			hints:   &AddrInfoHints{NumericServ: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetAddrInfo(ctx, tt.node, tt.service, tt.hints)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			FreeAddrInfo(got)
		})
	}
}

// TestGetAddrInfo_Transparency compares the facade with the resolver it
// forwards to.
func TestGetAddrInfo_Transparency(t *testing.T) {
	ctx := context.Background()

	direct, err := net.DefaultResolver.LookupNetIP(ctx, "ip", "localhost")
	if err != nil {
		t.Skipf("localhost does not resolve here: %v", err)
	}

	got, err := GetAddrInfo(ctx, "localhost", "", nil)
	require.NoError(t, err)
	require.Len(t, got, len(direct))
	for i, a := range direct {
		assert.Equal(t, a.Unmap(), got[i].Addr.Addr())
	}
}

func TestInetNtop(t *testing.T) {
	tests := []struct {
		name    string
		family  int
		src     []byte
		want    string
		wantErr bool
	}{
		{name: "ipv4", family: syscall.AF_INET, src: []byte{239, 255, 255, 250}, want: "239.255.255.250"},
		{name: "ipv6", family: syscall.AF_INET6, src: net.ParseIP("ff02::c").To16(), want: "ff02::c"},
		{name: "short ipv4", family: syscall.AF_INET, src: []byte{1, 2, 3}, wantErr: true},
		{name: "bad family", family: -1, src: []byte{1, 2, 3, 4}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InetNtop(tt.family, tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, net.IP(tt.src).String(), got)
		})
	}
}

func TestIfNameToIndex_Transparency(t *testing.T) {
	ifaces, err := net.Interfaces()
	require.NoError(t, err)

	for _, ifi := range ifaces {
		assert.Equal(t, uint(ifi.Index), IfNameToIndex(ifi.Name), "interface %s", ifi.Name)
	}
	assert.Zero(t, IfNameToIndex("no-such-interface0"))
}

func TestGetIfAddrs_Transparency(t *testing.T) {
	ifaces, err := net.Interfaces()
	require.NoError(t, err)

	got, err := GetIfAddrs()
	require.NoError(t, err)
	defer FreeIfAddrs(got)

	var want int
	for _, ifi := range ifaces {
		addrs, err := ifi.Addrs()
		require.NoError(t, err)
		if len(addrs) == 0 {
			want++
		}
		want += len(addrs)
	}
	assert.Len(t, got, want)
}

func TestTime_Transparency(t *testing.T) {
	before := time.Now()
	got := Time()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestStdio_Transparency(t *testing.T) {
	name := filepath.Join(t.TempDir(), "upnp.log")

	f, err := Fopen(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("MSG1041\n")
	require.NoError(t, err)
	require.NoError(t, Fflush(f))
	require.NoError(t, Fclose(f))

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "MSG1041\n", string(data))

	_, err = Fopen(filepath.Join(name, "not-a-dir", "x"), os.O_RDONLY, 0)
	assert.Error(t, err)
}

func TestStrerror_Transparency(t *testing.T) {
	assert.Equal(t, syscall.ECONNRESET.Error(), Strerror(syscall.ECONNRESET))
}

func TestPthread_Transparency(t *testing.T) {
	var mu sync.Mutex
	cond := sync.NewCond(&mu)
	ready := false
	woke := make(chan struct{})

	go func() {
		MutexLock(&mu)
		for !ready {
			CondWait(cond)
		}
		MutexUnlock(&mu)
		close(woke)
	}()

	MutexLock(&mu)
	ready = true
	CondSignal(cond)
	CondBroadcast(cond)
	MutexUnlock(&mu)

	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("waiter not woken")
	}
}
