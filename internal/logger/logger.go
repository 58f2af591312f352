// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger with the constructors and context
// helpers used by the go-life-keeper server and client.
//
// The Logger type embeds zerolog.Logger, so Debug, Info, Warn, Error and the
// rest of the zerolog API are available directly on *Logger. Request- and
// job-scoped loggers are obtained with FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger

	closer io.Closer
}

// FileConfig controls the rotating log file used by the client.
// Zero values fall back to the defaults below.
type FileConfig struct {
	// Path is the log file path. Empty means "logs/client.log" next to
	// the executable.
	Path string

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

func configureGlobals() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}

func newLogger(w io.Writer, role string) zerolog.Logger {
	return zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()
}

// NewLogger constructs a JSON *Logger writing to os.Stdout for the given
// role label (e.g. "server").
//
// Every entry carries the "role" field, a timestamp and a "func" caller
// field holding the fully-qualified function name. The global level is
// set to Debug.
func NewLogger(role string) *Logger {
	configureGlobals()
	return &Logger{Logger: newLogger(os.Stdout, role)}
}

// NewClientLogger constructs a *Logger that writes to a size-rotated file.
// The client keeps stdout for user-facing progress output, so its logs go
// to disk. If the log directory cannot be created the logger falls back
// to os.Stdout.
func NewClientLogger(role string, cfg FileConfig) *Logger {
	configureGlobals()

	path := cfg.Path
	if path == "" {
		execPath, _ := os.Executable()
		path = filepath.Join(filepath.Dir(execPath), "logs", "client.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Logger{Logger: newLogger(os.Stdout, role)}
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(cfg.MaxSizeMB, defaultMaxSizeMB),
		MaxBackups: orDefault(cfg.MaxBackups, defaultMaxBackups),
		MaxAge:     orDefault(cfg.MaxAgeDays, defaultMaxAgeDays),
		Compress:   true,
	}

	return &Logger{Logger: newLogger(rotator, role), closer: rotator}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Nop returns a *Logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits the receiver's fields.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{Logger: l.With().Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return &Logger{Logger: *log.Ctx(r.Context())}
}

// FromContext returns the logger attached to ctx with zerolog's
// WithContext. If none is attached zerolog's default logger is returned,
// so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{Logger: *log.Ctx(ctx)}
}

// WithContext attaches l to ctx so FromContext can retrieve it.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}
