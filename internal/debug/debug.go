// Package debug provides the process-wide logger. Debug output is gated by
// SetDebug; warnings and errors from component loggers are always written.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

const timeFormat = "15:04:05.000"

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	out     io.Writer = os.Stderr
	logFile *os.File
	logger  zerolog.Logger
)

func init() {
	rebuild()
}

// rebuild recreates the logger from the current settings. Callers hold mu.
func rebuild() {
	console := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		TimeFormat: timeFormat,
	}

	var w io.Writer = console
	if logFile != nil {
		w = zerolog.MultiLevelWriter(console, logFile)
	}

	level := zerolog.WarnLevel
	if enabled {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
	rebuild()
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
	rebuild()
}

// SetOutput redirects console log output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
	rebuild()
}

// SetLogFile additionally writes JSON log lines to path, creating parent
// directories as needed. An empty path disables the file sink.
func SetLogFile(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			rebuild()
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			rebuild()
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
	}

	rebuild()
	return nil
}

// Logger returns a logger tagged with the given component name.
func Logger(component string) zerolog.Logger {
	l := current()
	return l.With().Str("component", component).Logger()
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	l := current()
	l.Debug().Msg(fmt.Sprintf(format, args...))
}

// Debugf is an alias for Debug
func Debugf(format string, args ...interface{}) {
	Debug(format, args...)
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	l := current()
	l.Debug().Msgf("=== %s ===", section)
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	l := current()
	l.Debug().Msgf("%s = %v", key, value)
}

// DebugJSON prints structured data as JSON for debugging
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}

	jsonBytes, err := json.Marshal(v)
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}

	l := current()
	l.Debug().RawJSON(key, jsonBytes).Msg(key)
}
