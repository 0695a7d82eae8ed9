package umocktest

import (
	"crypto/tls"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/upnplib/upnplib-sub003/umock"
)

// SysinfoMock is a programmable umock.Sysinfo.
type SysinfoMock struct {
	mock.Mock
}

var _ umock.Sysinfo = (*SysinfoMock)(nil)

// NewSysinfoMock injects a SysinfoMock for the rest of the test.
func NewSysinfoMock(t testing.TB) *SysinfoMock {
	m := &SysinfoMock{}
	inject[umock.Sysinfo](t, umock.SysinfoSeam, m, &m.Mock)
	return m
}

func (m *SysinfoMock) Time() time.Time {
	return m.Called().Get(0).(time.Time)
}

func (m *SysinfoMock) Uname() (umock.Utsname, error) {
	args := m.Called()
	return args.Get(0).(umock.Utsname), args.Error(1)
}

// SslMock is a programmable umock.Ssl.
type SslMock struct {
	mock.Mock
}

var _ umock.Ssl = (*SslMock)(nil)

// NewSslMock injects an SslMock for the rest of the test.
func NewSslMock(t testing.TB) *SslMock {
	m := &SslMock{}
	inject[umock.Ssl](t, umock.SslSeam, m, &m.Mock)
	return m
}

func (m *SslMock) Read(conn *tls.Conn, b []byte) (int, error) {
	args := m.Called(conn, b)
	return args.Int(0), args.Error(1)
}

func (m *SslMock) Write(conn *tls.Conn, b []byte) (int, error) {
	args := m.Called(conn, b)
	return args.Int(0), args.Error(1)
}

// StdioMock is a programmable umock.Stdio.
type StdioMock struct {
	mock.Mock
}

var _ umock.Stdio = (*StdioMock)(nil)

// NewStdioMock injects a StdioMock for the rest of the test.
func NewStdioMock(t testing.TB) *StdioMock {
	m := &StdioMock{}
	inject[umock.Stdio](t, umock.StdioSeam, m, &m.Mock)
	return m
}

func (m *StdioMock) Fopen(name string, flag int, perm os.FileMode) (*os.File, error) {
	args := m.Called(name, flag, perm)
	f, _ := args.Get(0).(*os.File)
	return f, args.Error(1)
}

func (m *StdioMock) Fclose(f *os.File) error { return m.Called(f).Error(0) }

func (m *StdioMock) Fflush(f *os.File) error { return m.Called(f).Error(0) }

// StringhMock is a programmable umock.Stringh.
type StringhMock struct {
	mock.Mock
}

var _ umock.Stringh = (*StringhMock)(nil)

// NewStringhMock injects a StringhMock for the rest of the test.
func NewStringhMock(t testing.TB) *StringhMock {
	m := &StringhMock{}
	inject[umock.Stringh](t, umock.StringhSeam, m, &m.Mock)
	return m
}

func (m *StringhMock) Strerror(errnum syscall.Errno) string {
	return m.Called(errnum).String(0)
}

// CountingPthread is a umock.Pthread that really locks and counts calls.
// A programmed mock would have to reimplement locking to keep callers
// working, so counting is the useful double here.
type CountingPthread struct {
	mu                         sync.Mutex
	locks, unlocks             int
	waits, signals, broadcasts int
}

// NewCountingPthread injects a CountingPthread for the rest of the test.
func NewCountingPthread(t testing.TB) *CountingPthread {
	p := &CountingPthread{}
	inject[umock.Pthread](t, umock.PthreadSeam, p, nil)
	return p
}

func (p *CountingPthread) count(n *int) {
	p.mu.Lock()
	*n++
	p.mu.Unlock()
}

func (p *CountingPthread) MutexLock(m *sync.Mutex) {
	p.count(&p.locks)
	m.Lock()
}

func (p *CountingPthread) MutexUnlock(m *sync.Mutex) {
	p.count(&p.unlocks)
	m.Unlock()
}

func (p *CountingPthread) CondWait(c *sync.Cond) {
	p.count(&p.waits)
	c.Wait()
}

func (p *CountingPthread) CondSignal(c *sync.Cond) {
	p.count(&p.signals)
	c.Signal()
}

func (p *CountingPthread) CondBroadcast(c *sync.Cond) {
	p.count(&p.broadcasts)
	c.Broadcast()
}

// Locks returns the number of MutexLock and MutexUnlock calls seen.
func (p *CountingPthread) Locks() (locks, unlocks int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locks, p.unlocks
}
