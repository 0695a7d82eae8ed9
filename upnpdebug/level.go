package upnpdebug

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Level is the verbosity of a log record. A record is written when its
// level is at most the level set with SetLogLevel.
type Level int

const (
	Critical Level = iota
	Error
	Info
	All
)

// DefaultLevel is in effect until SetLogLevel is called.
const DefaultLevel = Critical

var levelNames = [...]string{"critical", "error", "info", "all"}

func (l Level) String() string {
	if l < Critical || l > All {
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
	return levelNames[l]
}

// ParseLevel accepts a level name (case insensitive) or its number.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if s == name {
			return Level(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= int(Critical) && n <= int(All) {
		return Level(n), nil
	}
	return DefaultLevel, fmt.Errorf("upnpdebug: unknown log level %q", s)
}

// UnmarshalText lets configuration decoders read a Level.
func (l *Level) UnmarshalText(text []byte) error {
	lvl, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// zapLevel maps a Level onto the zap severity used for filtering.
func (l Level) zapLevel() zapcore.Level {
	switch {
	case l <= Critical:
		return zapcore.ErrorLevel
	case l == Error:
		return zapcore.WarnLevel
	case l == Info:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Module identifies the subsystem a record comes from.
type Module int

const (
	SSDP Module = iota
	SOAP
	GENA
	TPOOL
	MSERV
	DOM
	API
	HTTP
)

// String returns the four letter tag written in front of each record.
func (m Module) String() string {
	switch m {
	case SSDP:
		return "SSDP"
	case SOAP:
		return "SOAP"
	case GENA:
		return "GENA"
	case TPOOL:
		return "TPOL"
	case MSERV:
		return "MSER"
	case DOM:
		return "DOM_"
	case API:
		return "API_"
	case HTTP:
		return "HTTP"
	default:
		return "UNKN"
	}
}
