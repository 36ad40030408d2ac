// internal/logger/logger.go
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	defaultLogger *slog.Logger
	logLevel      *slog.LevelVar
	initOnce      sync.Once

	// debugFilter prints filtering decisions to stderr. Set by EnableFilterDebug.
	debugFilter bool
)

// Init initializes the logger package. Only the first call has any effect.
func Init(cfg Config, output io.Writer) {
	initOnce.Do(func() {
		if output == nil {
			output = io.Discard
		}
		defaultLogger, logLevel = newLogger(cfg, output)
		// Straight to the handler: logAtLevel would re-enter initOnce.
		r := slog.NewRecord(time.Now(), slog.LevelInfo, "Logger initialized", 0)
		r.AddAttrs(slog.String("level", logLevel.Level().String()))
		_ = defaultLogger.Handler().Handle(context.Background(), r)
	})
}

// Setup opens the log destination named by cfg.LogFilePath and initializes
// the logger with it. An empty path or "-" logs to stderr. The returned
// function closes the log file.
func Setup(cfg Config) (func() error, error) {
	if cfg.LogFilePath == "" || cfg.LogFilePath == "-" {
		Init(cfg, os.Stderr)
		return func() error { return nil }, nil
	}

	file, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file '%s': %w", cfg.LogFilePath, err)
	}
	Init(cfg, file)
	return file.Close, nil
}

// EnableFilterDebug turns on stderr diagnostics for the filtering handler.
func EnableFilterDebug(enabled bool) {
	debugFilter = enabled
}

// newLogger builds the slog pipeline: text handler wrapped in the filter.
func newLogger(cfg Config, output io.Writer) (*slog.Logger, *slog.LevelVar) {
	cfg.process()

	level := new(slog.LevelVar)
	level.Set(cfg.level.Level())

	opts := slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	handler := newFilteringHandler(slog.NewTextHandler(output, &opts), &cfg)
	return slog.New(handler), level
}

// ensureInitialized installs a discarding logger if Init was never called.
func ensureInitialized() {
	initOnce.Do(func() {
		logLevel = new(slog.LevelVar)
		logLevel.Set(slog.LevelInfo)
		defaultLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: logLevel}))
	})
}

// logAtLevel creates and logs a record at the specified level, capturing the caller of the
// exported wrapper as the source.
func logAtLevel(level slog.Level, format string, args ...interface{}) {
	ensureInitialized()
	if !defaultLogger.Enabled(context.Background(), level) {
		return
	}
	var pcs [1]uintptr
	// Skip runtime.Callers, logAtLevel and the wrapper (Debugf, Infof, ...).
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	_ = defaultLogger.Handler().Handle(context.Background(), r)
}

// logTagAtLevel is logAtLevel with a tag attribute used by tag filters.
func logTagAtLevel(level slog.Level, tag, format string, args ...interface{}) {
	ensureInitialized()
	if !defaultLogger.Enabled(context.Background(), level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	r.AddAttrs(slog.String(tagKey, tag))
	_ = defaultLogger.Handler().Handle(context.Background(), r)
}

// --- Wrapper Functions ---

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, format, args...)
}

// DebugTagf logs a debug message carrying a tag that tag filters match on.
func DebugTagf(tag, format string, args ...interface{}) {
	logTagAtLevel(slog.LevelDebug, tag, format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...interface{}) {
	logAtLevel(slog.LevelInfo, format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...interface{}) {
	logAtLevel(slog.LevelWarn, format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, format, args...)
}

// Fatalf logs an error message then exits.
func Fatalf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, format, args...)
	os.Exit(1)
}
