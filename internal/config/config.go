// Package config loads the runtime settings of the library: thread-pool
// attributes, logging and socket timeouts. Files are YAML (.yaml, .yml)
// or TOML (.toml).
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/upnplib/upnplib-sub003/internal/errors"
	"github.com/upnplib/upnplib-sub003/sock"
	"github.com/upnplib/upnplib-sub003/threadpool"
	"github.com/upnplib/upnplib-sub003/umock"
	"github.com/upnplib/upnplib-sub003/upnpdebug"
)

// Config is the complete configuration.
type Config struct {
	ThreadPool ThreadPool `yaml:"threadpool" toml:"threadpool"`
	Logging    Logging    `yaml:"logging" toml:"logging"`
	Socket     Socket     `yaml:"socket" toml:"socket"`
}

// ThreadPool configures the pool started by the thread-pool guard.
type ThreadPool struct {
	threadpool.Attr `yaml:",inline"`
	// Shutdown starts the pool with admission suppressed: every job is
	// refused while the pool itself runs.
	Shutdown bool `yaml:"shutdown" toml:"shutdown"`
}

// Logging configures the upnpdebug subsystem.
type Logging struct {
	Level upnpdebug.Level `yaml:"level" toml:"level"`
	// File is the log file; empty logs to stderr.
	File string `yaml:"file" toml:"file"`
}

// Socket configures stream and datagram sockets.
type Socket struct {
	// ResponseTimeout bounds socket reads and writes without a deadline.
	// A negative value waits forever.
	ResponseTimeout time.Duration `yaml:"response_timeout" toml:"response_timeout"`
	// Interface restricts SSDP multicast to one interface.
	Interface string `yaml:"interface" toml:"interface"`
}

// NewSockInfo returns the SockInfo of a connected descriptor with the
// configured response timeout.
func (s Socket) NewSockInfo(fd int) *sock.SockInfo {
	si := sock.New(fd)
	si.Timeout = s.ResponseTimeout
	return si
}

// PacketOptions returns the NewPacketSock options for this section.
func (s Socket) PacketOptions() []sock.PacketOption {
	if s.Interface == "" {
		return nil
	}
	return []sock.PacketOption{sock.WithInterface(s.Interface)}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ThreadPool: ThreadPool{Attr: threadpool.DefaultAttr()},
		Logging:    Logging{Level: upnpdebug.DefaultLevel},
		Socket:     Socket{ResponseTimeout: sock.DefaultResponseTimeout},
	}
}

// Load reads the file at path over the defaults and validates the result.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	format := strings.ToLower(filepath.Ext(path))
	if format != ".yaml" && format != ".yml" && format != ".toml" {
		return cfg, &errors.ValidationError{Field: "path", Value: path, Message: "unsupported config format"}
	}

	f, err := umock.Fopen(path, os.O_RDONLY, 0)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer func() { _ = umock.Fclose(f) }()

	if format == ".toml" {
		err = decodeTOML(f, &cfg)
	} else {
		err = decodeYAML(f, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func decodeYAML(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func decodeTOML(r io.Reader, cfg *Config) error {
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return &errors.ValidationError{Field: undecoded[0].String(), Value: "", Message: "unknown key"}
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.ThreadPool.Attr.Validate(); err != nil {
		return &errors.ValidationError{Field: "threadpool", Value: c.ThreadPool.Attr, Message: err.Error()}
	}
	if c.Logging.Level < upnpdebug.Critical || c.Logging.Level > upnpdebug.All {
		return &errors.ValidationError{Field: "logging.level", Value: int(c.Logging.Level), Message: "unknown level"}
	}
	if c.Socket.ResponseTimeout == 0 {
		return &errors.ValidationError{Field: "socket.response_timeout", Value: c.Socket.ResponseTimeout, Message: "must not be zero"}
	}
	return nil
}
