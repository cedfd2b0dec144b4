// Package debug provides the logging infrastructure for tissue.
// Logs are written to ~/.tissue/tissue.log, truncated on each launch, at the
// level chosen with --log-level. Level "none" turns every call into a no-op.
package debug

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	// LogFileName is the name of the log file.
	LogFileName = "tissue.log"
	// LogDirName is the name of the directory containing the log file.
	LogDirName = ".tissue"
)

// Level mirrors the --log-level values.
type Level string

const (
	LevelTrace Level = "trace"
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelNone  Level = "none"
)

// slogTrace sits below slog.LevelDebug for per-action dispatch logging.
const slogTrace = slog.LevelDebug - 4

// Levels lists the accepted level names in increasing severity.
var Levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelNone}

// ParseLevel validates a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Levels {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid log level %q (want one of trace, debug, info, warn, error, none)", s)
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelTrace:
		return slogTrace
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var (
	mu      sync.RWMutex
	enabled bool
	logger  = discardLogger()
	logFile *os.File

	// getLogPath is a function variable to allow overriding in tests.
	getLogPath = defaultGetLogPath
)

// Init initializes the logging system.
// With LevelNone all logging operations become no-ops; otherwise the log file
// is created or truncated and records at or above level are written to it.
func Init(level Level) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	if level == LevelNone || level == "" {
		enabled = false
		logger = discardLogger()
		return nil
	}

	logPath, err := getLogPath()
	if err != nil {
		return fmt.Errorf("determine log path: %w", err)
	}

	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	//nolint:gosec // G304: Log path is computed from user home, not user input
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f
	enabled = true

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: level.slogLevel(),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == slogTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	})
	logger = slog.New(handler)
	logger.Info("tissue log started", "at", time.Now().Format(time.RFC3339), "level", string(level))
	return nil
}

// Close closes the log file if open.
// Safe to call even if logging is disabled.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Logger returns the structured logger. It is never nil.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Trace logs below debug level; used for per-action dispatch tracing.
func Trace(msg string, args ...any) {
	Logger().Log(context.Background(), slogTrace, msg, args...)
}

// Log writes a debug message.
// Arguments are handled in the manner of fmt.Print.
func Log(v ...any) {
	if !Enabled() {
		return
	}
	Logger().Debug(fmt.Sprint(v...))
}

// Logf writes a formatted debug message.
// Arguments are handled in the manner of fmt.Printf.
func Logf(format string, v ...any) {
	if !Enabled() {
		return
	}
	Logger().Debug(fmt.Sprintf(format, v...))
}

// Enabled returns whether a log file is currently open.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

func defaultGetLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}

// GetLogPath returns the path to the log file.
func GetLogPath() (string, error) {
	return getLogPath()
}

// LogDir returns the directory holding the log file.
func LogDir() (string, error) {
	path, err := getLogPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
