package guard

import (
	"errors"

	"github.com/upnplib/upnplib-sub003/upnpdebug"
)

// LogSubsystem is the logging subsystem a LoggingGuard controls.
type LogSubsystem interface {
	SetLogLevel(level upnpdebug.Level)
	InitLog() error
	CloseLog()
}

// upnpdebugSubsystem is the process logging subsystem.
type upnpdebugSubsystem struct{}

func (upnpdebugSubsystem) SetLogLevel(level upnpdebug.Level) { upnpdebug.SetLogLevel(level) }
func (upnpdebugSubsystem) InitLog() error                    { return upnpdebug.InitLog() }
func (upnpdebugSubsystem) CloseLog()                         { upnpdebug.CloseLog() }

var errGuardClosed = errors.New("guard already closed")

// LoggingGuard closes the logging subsystem when its scope ends, whether
// or not logging was ever enabled.
type LoggingGuard struct {
	lifecycle
	ls LogSubsystem
}

// NewLoggingGuard returns a guard for the upnpdebug subsystem, or for the
// subsystem given with WithLogSubsystem.
func NewLoggingGuard(opts ...Option) (*LoggingGuard, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	g := &LoggingGuard{ls: cfg.logSub}
	g.set(Acquired)
	return g, nil
}

// Enable sets level and opens the logging subsystem.
func (g *LoggingGuard) Enable(level upnpdebug.Level) error {
	if g.State() != Acquired {
		return &LoggingInitError{Err: errGuardClosed}
	}
	g.ls.SetLogLevel(level)
	if err := g.ls.InitLog(); err != nil {
		return &LoggingInitError{Err: err}
	}
	return nil
}

// Disable closes the logging subsystem. Enable may be called again.
func (g *LoggingGuard) Disable() {
	g.ls.CloseLog()
}

// Close closes the logging subsystem.
func (g *LoggingGuard) Close() error {
	return g.release(func() error {
		g.ls.CloseLog()
		return nil
	})
}
