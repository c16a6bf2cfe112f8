// Package logger provides the run log for sitesync.
// Messages are written to stderr through a phuslu/log console writer.
// The default level is info; the --verbose flag lowers it to debug.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/phuslu/log"
)

var (
	mu      sync.RWMutex
	verbose bool
	level   = log.InfoLevel
	output  io.Writer = os.Stderr
	base    = newLogger(output, level)
)

func newLogger(w io.Writer, lvl log.Level) *log.Logger {
	return &log.Logger{
		Level:      lvl,
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:      w,
			ColorOutput: false,
		},
	}
}

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		base = newLogger(output, log.DebugLevel)
	} else {
		base = newLogger(output, level)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetLevel sets the minimum level by name (trace, debug, info, warn, error).
// Verbose mode still forces debug output.
func SetLevel(name string) error {
	switch name {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", name)
	}

	mu.Lock()
	defer mu.Unlock()
	level = log.ParseLevel(name)
	if !verbose {
		base = newLogger(output, level)
	}
	return nil
}

// SetOutput sets the output writer.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	lvl := level
	if verbose {
		lvl = log.DebugLevel
	}
	base = newLogger(output, lvl)
}

func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debug logs a message at debug level.
func Debug(format string, args ...any) {
	current().Debug().Msgf(format, args...)
}

// Section logs a section header when verbose mode is enabled.
func Section(name string) {
	current().Debug().Msgf("=== %s ===", name)
}

// Info logs a message at info level.
func Info(format string, args ...any) {
	current().Info().Msgf(format, args...)
}

// Warn logs a message at warn level.
func Warn(format string, args ...any) {
	current().Warn().Msgf(format, args...)
}

// Error logs a message at error level.
func Error(format string, args ...any) {
	current().Error().Msgf(format, args...)
}
