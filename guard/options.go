package guard

import (
	"go.uber.org/zap"

	"github.com/upnplib/upnplib-sub003/threadpool"
	"github.com/upnplib/upnplib-sub003/upnpdebug"
)

// Option configures a guard. Options that do not apply to a guard are
// ignored by it.
type Option func(*config) error

type config struct {
	logger *zap.Logger
	attr   *threadpool.Attr
	logSub LogSubsystem
}

func newConfig(opts []Option) (*config, error) {
	c := &config{logSub: upnpdebugSubsystem{}}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// log returns the configured logger or, without one, the current
// upnpdebug logger of module.
func (c *config) log(module upnpdebug.Module) *zap.Logger {
	if c.logger != nil {
		return c.logger
	}
	return upnpdebug.Logger(module)
}

// WithLogger makes the guard report release failures to logger instead of
// the upnpdebug logging subsystem.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithAttr initializes a thread pool with attr instead of the defaults.
func WithAttr(attr threadpool.Attr) Option {
	return func(c *config) error {
		if err := attr.Validate(); err != nil {
			return err
		}
		c.attr = &attr
		return nil
	}
}

// WithLogSubsystem replaces the logging subsystem a LoggingGuard controls.
func WithLogSubsystem(ls LogSubsystem) Option {
	return func(c *config) error {
		c.logSub = ls
		return nil
	}
}
