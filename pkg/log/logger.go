// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger describes a logger to be used by the sbat tooling.
type Logger interface {
	// Debugf logs a diagnostic message. It is dropped unless debug
	// output was enabled.
	Debugf(format string, args ...interface{})

	// Warnf logs an warning message.
	Warnf(format string, args ...interface{})

	// Errorf logs an error message.
	Errorf(format string, args ...interface{})

	// Fatalf logs a fatal message and immediately exits the application
	// with os.Exit.
	Fatalf(format string, args ...interface{})
}

// DefaultLogger is the logger used by default everywhere within the module.
var DefaultLogger Logger

func init() {
	DefaultLogger = New(os.Stderr)
}

// New returns a Logger writing human readable lines to w. Debug output
// is disabled until SetDebug is called.
func New(w io.Writer) *ZeroLogger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return &ZeroLogger{
		Logger: zerolog.New(out).Level(zerolog.InfoLevel).With().Timestamp().Str("app", "sbat").Logger(),
	}
}

// ZeroLogger implements Logger on top of zerolog.
type ZeroLogger struct {
	Logger zerolog.Logger
}

// SetDebug toggles debug level output.
func (logger *ZeroLogger) SetDebug(enable bool) {
	if enable {
		logger.Logger = logger.Logger.Level(zerolog.DebugLevel)
		return
	}
	logger.Logger = logger.Logger.Level(zerolog.InfoLevel)
}

// Debugf implements Logger.
func (logger *ZeroLogger) Debugf(format string, args ...interface{}) {
	logger.Logger.Debug().Msgf(format, args...)
}

// Warnf implements Logger.
func (logger *ZeroLogger) Warnf(format string, args ...interface{}) {
	logger.Logger.Warn().Msgf(format, args...)
}

// Errorf implements Logger.
func (logger *ZeroLogger) Errorf(format string, args ...interface{}) {
	logger.Logger.Error().Msgf(format, args...)
}

// Fatalf implements Logger.
func (logger *ZeroLogger) Fatalf(format string, args ...interface{}) {
	// zerolog's Fatal level calls os.Exit(1) after writing.
	logger.Logger.Fatal().Msg(fmt.Sprintf(format, args...))
}

// SetDebug enables or disables debug output of DefaultLogger, if it
// supports that.
func SetDebug(enable bool) {
	if l, ok := DefaultLogger.(interface{ SetDebug(bool) }); ok {
		l.SetDebug(enable)
	}
}

// Debugf logs a diagnostic message.
func Debugf(format string, args ...interface{}) {
	DefaultLogger.Debugf(format, args...)
}

// Warnf logs an warning message.
func Warnf(format string, args ...interface{}) {
	DefaultLogger.Warnf(format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	DefaultLogger.Errorf(format, args...)
}

// Fatalf logs a fatal message and immediately exits the application
// with os.Exit (which is expected to be called by the DefaultLogger.Fatalf).
func Fatalf(format string, args ...interface{}) {
	DefaultLogger.Fatalf(format, args...)
}
