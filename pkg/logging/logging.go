// Package logging owns the structured loggers used by the bootstrap layer.
//
// A Config pairs a *slog.Logger with the *slog.LevelVar that gates it, so the
// level can be changed after construction while every holder of the logger
// observes the new value. Each Config is independent: tests and embedded
// services construct their own instead of sharing a process-wide singleton.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/cases"
)

// Config is a logger together with its mutable level.
type Config struct {
	level  *slog.LevelVar
	logger *slog.Logger
}

// Option configures a Config.
type Option func(*options)

type options struct {
	json  bool
	level slog.Level
	attrs []any
}

// WithJSON switches the handler to JSON output.
func WithJSON() Option {
	return func(o *options) {
		o.json = true
	}
}

// WithLevel sets the initial level.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithAttrs adds attributes to every record.
func WithAttrs(args ...any) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, args...)
	}
}

// New creates a Config named name that writes to w.
// A nil writer means os.Stderr.
func New(name string, w io.Writer, opts ...Option) *Config {
	o := &options{level: slog.LevelInfo}
	for _, opt := range opts {
		opt(o)
	}
	if w == nil {
		w = os.Stderr
	}

	lv := &slog.LevelVar{}
	lv.Set(o.level)

	handlerOpts := &slog.HandlerOptions{Level: lv}
	var handler slog.Handler
	if o.json {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	logger := slog.New(handler)
	if name != "" {
		logger = logger.With("logger", name)
	}
	if len(o.attrs) > 0 {
		logger = logger.With(o.attrs...)
	}

	return &Config{level: lv, logger: logger}
}

// Logger returns the logger gated by this Config's level.
func (c *Config) Logger() *slog.Logger {
	return c.logger
}

// Level returns the current level.
func (c *Config) Level() slog.Level {
	return c.level.Level()
}

// SetLevel changes the level by name. Unknown names leave the level untouched.
func (c *Config) SetLevel(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	c.level.Set(level)
	return nil
}

// ParseLevel maps a level name to a slog.Level.
// Accepted names are debug, info, warn, warning and error in any case.
func ParseLevel(name string) (slog.Level, error) {
	switch cases.Fold().String(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %q", name)
	}
}

// IsValidLevel reports whether name is a recognized level name.
func IsValidLevel(name string) bool {
	_, err := ParseLevel(name)
	return err == nil
}

// SetDefaultStructuredLogger installs a JSON logger on stderr as the slog
// default, tagged with the service name and version. The level is taken from
// LOG_LEVEL when set and valid.
func SetDefaultStructuredLogger(name, version string) *Config {
	level := slog.LevelInfo
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if l, err := ParseLevel(v); err == nil {
			level = l
		}
	}

	c := New("", os.Stderr, WithJSON(), WithLevel(level), WithAttrs("name", name, "version", version))
	slog.SetDefault(c.Logger())
	return c
}
