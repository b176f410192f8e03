// Package logger provides the process-wide structured logger.
// Messages are written through zerolog; debug output is only emitted when
// verbose mode is enabled via the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	verbose bool
	jsonOut bool
	output  io.Writer = os.Stderr
	log               = build()
)

func build() zerolog.Logger {
	w := output
	if !jsonOut {
		w = zerolog.ConsoleWriter{Out: output, NoColor: true, TimeFormat: time.RFC3339}
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	log = build()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetJSON switches between JSON lines and console output.
func SetJSON(v bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonOut = v
	log = build()
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = build()
}

// Zerolog returns the current logger for structured call sites such as
// request logging middleware.
func Zerolog() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug().Msgf(format, args...)
}

// Section logs a section marker if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug().Msg(fmt.Sprintf("=== %s ===", name))
}

// Info logs an informational message.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Info().Msgf(format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warn().Msgf(format, args...)
}

// Error logs err with a message.
func Error(err error, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Error().Err(err).Msgf(format, args...)
}
