package guard

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upnplib/upnplib-sub003/umock"
	"github.com/upnplib/upnplib-sub003/umock/umocktest"
)

func TestSigpipeGuard_BlocksAndRestores(t *testing.T) {
	sm := umocktest.NewFakeSigmask(t)

	g, err := NewSigpipeGuard()
	require.NoError(t, err)
	blocked, _ := sm.State(syscall.SIGPIPE)
	assert.True(t, blocked)

	// A write to a broken connection inside the scope.
	sm.Raise(syscall.SIGPIPE)

	require.NoError(t, g.Close())
	blocked, pending := sm.State(syscall.SIGPIPE)
	assert.False(t, blocked)
	assert.False(t, pending)
	assert.Zero(t, sm.Delivered(syscall.SIGPIPE))
	assert.Equal(t, Released, g.State())
}

func TestSigpipeGuard_AlreadyBlocked(t *testing.T) {
	sm := umocktest.NewFakeSigmask(t)
	sm.SetBlocked(syscall.SIGPIPE, true)

	g, err := NewSigpipeGuard()
	require.NoError(t, err)
	sm.Raise(syscall.SIGPIPE)
	require.NoError(t, g.Close())

	blocked, pending := sm.State(syscall.SIGPIPE)
	assert.True(t, blocked)
	assert.False(t, pending)
}

func TestSigpipeGuard_PendingOnEntry(t *testing.T) {
	sm := umocktest.NewFakeSigmask(t)
	sm.SetBlocked(syscall.SIGPIPE, true)
	sm.Raise(syscall.SIGPIPE)

	g, err := NewSigpipeGuard()
	require.NoError(t, err)
	require.NoError(t, g.Close())

	blocked, pending := sm.State(syscall.SIGPIPE)
	assert.True(t, blocked)
	assert.True(t, pending, "a signal pending before the scope belongs to the caller")
}

// TestSigpipeGuard_Nested verifies that closing an inner guard leaves the
// state the outer guard set up.
func TestSigpipeGuard_Nested(t *testing.T) {
	sm := umocktest.NewFakeSigmask(t)

	outer, err := NewSigpipeGuard()
	require.NoError(t, err)

	inner, err := NewSigpipeGuard()
	require.NoError(t, err)
	sm.Raise(syscall.SIGPIPE)
	require.NoError(t, inner.Close())

	blocked, pending := sm.State(syscall.SIGPIPE)
	assert.True(t, blocked, "inner guard must not unblock what the outer guard blocked")
	assert.False(t, pending)

	sm.Raise(syscall.SIGPIPE)
	require.NoError(t, outer.Close())

	blocked, pending = sm.State(syscall.SIGPIPE)
	assert.False(t, blocked)
	assert.False(t, pending)
	assert.Zero(t, sm.Delivered(syscall.SIGPIPE))
}

type unsupportedSigmask struct{}

func (unsupportedSigmask) Pending(syscall.Signal) (bool, error) { return false, umock.ErrNotSupported }
func (unsupportedSigmask) Block(syscall.Signal) (bool, error)   { return false, umock.ErrNotSupported }
func (unsupportedSigmask) Unblock(syscall.Signal) error         { return umock.ErrNotSupported }
func (unsupportedSigmask) Consume(syscall.Signal) error         { return umock.ErrNotSupported }

func TestSigpipeGuard_Unsupported(t *testing.T) {
	inj := umock.SigmaskSeam.Inject(unsupportedSigmask{})
	defer inj.Restore()

	g, err := NewSigpipeGuard()
	require.NoError(t, err)
	assert.Equal(t, Acquired, g.State())
	assert.NoError(t, g.Close())
}

type failingSigmask struct{ unsupportedSigmask }

func (failingSigmask) Pending(syscall.Signal) (bool, error) { return false, syscall.EINVAL }

func TestSigpipeGuard_MaskError(t *testing.T) {
	inj := umock.SigmaskSeam.Inject(failingSigmask{})
	defer inj.Restore()

	g, err := NewSigpipeGuard()
	assert.Nil(t, g)
	var initErr *ResourceInitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, int(syscall.EINVAL), initErr.Code)
}
