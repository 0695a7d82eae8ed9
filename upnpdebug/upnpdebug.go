// Package upnpdebug is the logging subsystem of the SDK.
//
// Logging is off until a level or a file name has been set and InitLog has
// been called:
//
//	upnpdebug.SetLogLevel(upnpdebug.Info)
//	upnpdebug.SetLogFileNames("/var/log/upnp.log")
//	if err := upnpdebug.InitLog(); err != nil {
//	    return err
//	}
//	defer upnpdebug.CloseLog()
//
// Records are written by a zap core with a console encoder. The log file is
// opened and closed through the umock Stdio facility and the package lock
// is taken through the umock Pthread facility, so tests can observe both.
package upnpdebug

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/upnplib/upnplib-sub003/umock"
)

type logState struct {
	mu sync.Mutex

	level    zap.AtomicLevel
	cur      Level
	fileName string

	// setCalled is true once SetLogLevel or SetLogFileNames ran since the
	// last CloseLog. Without it InitLog enables nothing.
	setCalled  bool
	initCalled bool

	file *os.File // nil when writing to stderr
	base *zap.Logger
}

var std = newLogState()

func newLogState() *logState {
	return &logState{
		level: zap.NewAtomicLevelAt(DefaultLevel.zapLevel()),
		cur:   DefaultLevel,
		base:  zap.NewNop(),
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		NameKey:          "logger",
		CallerKey:        "caller",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}
}

// SetLogLevel sets the most verbose level that is still written.
func SetLogLevel(level Level) {
	umock.MutexLock(&std.mu)
	defer umock.MutexUnlock(&std.mu)

	std.cur = level
	std.level.SetLevel(level.zapLevel())
	std.setCalled = true
}

// SetLogFileNames selects the file InitLog opens for appending. An empty
// name selects stderr.
func SetLogFileNames(name string) {
	umock.MutexLock(&std.mu)
	defer umock.MutexUnlock(&std.mu)

	std.fileName = name
	std.setCalled = true
}

// InitLog opens the log destination. It does nothing and succeeds when
// neither SetLogLevel nor SetLogFileNames was called. A file that cannot be
// opened is an error; InitLog does not fall back to stderr.
func InitLog() error {
	umock.MutexLock(&std.mu)
	defer umock.MutexUnlock(&std.mu)

	std.initCalled = true
	if !std.setCalled {
		return nil
	}
	if err := std.closeFileLocked(); err != nil {
		return err
	}

	ws := zapcore.Lock(zapcore.AddSync(os.Stderr))
	if std.fileName != "" {
		f, err := umock.Fopen(std.fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			std.base = zap.NewNop()
			return fmt.Errorf("upnpdebug: open log file %q: %w", std.fileName, err)
		}
		std.file = f
		ws = zapcore.AddSync(f)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), ws, std.level)
	std.base = zap.New(core, zap.AddCaller())
	return nil
}

// CloseLog closes the log file and disables logging until the next
// SetLogLevel/SetLogFileNames and InitLog. It may be called at any time
// and any number of times.
func CloseLog() {
	umock.MutexLock(&std.mu)
	defer umock.MutexUnlock(&std.mu)

	_ = std.base.Sync()
	if err := std.closeFileLocked(); err != nil {
		fmt.Fprintf(os.Stderr, "upnpdebug: %v\n", err)
	}
	std.base = zap.NewNop()
	std.setCalled = false
	std.initCalled = false
}

func (s *logState) closeFileLocked() error {
	if s.file == nil {
		return nil
	}
	f := s.file
	s.file = nil
	if err := umock.Fclose(f); err != nil {
		return fmt.Errorf("upnpdebug: close log file %q: %w", f.Name(), err)
	}
	return nil
}

// DebugAtThisLevel reports whether a record of level from module would be
// written.
func DebugAtThisLevel(level Level, module Module) bool {
	umock.MutexLock(&std.mu)
	defer umock.MutexUnlock(&std.mu)
	return std.enabledLocked(level)
}

func (s *logState) enabledLocked(level Level) bool {
	return s.initCalled && s.setCalled && level <= s.cur
}

// Printf writes one record. The record name carries module and level in
// the form UPNP-<module>-<level>.
func Printf(level Level, module Module, format string, args ...interface{}) {
	umock.MutexLock(&std.mu)
	defer umock.MutexUnlock(&std.mu)

	if !std.enabledLocked(level) {
		return
	}
	std.base.
		WithOptions(zap.AddCallerSkip(1)).
		Named(fmt.Sprintf("UPNP-%s-%d", module, level)).
		Log(level.zapLevel(), fmt.Sprintf(format, args...))
}

// Logger returns a structured logger for module that writes to the
// current destination. It is a no-op logger while logging is disabled and
// does not follow a later InitLog or CloseLog; fetch it again when needed.
func Logger(module Module) *zap.Logger {
	umock.MutexLock(&std.mu)
	defer umock.MutexUnlock(&std.mu)
	return std.base.Named("UPNP-" + module.String())
}
