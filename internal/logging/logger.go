// Package logging provides structured file logging for portal-notify.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/portal-notify/internal/colors"
)

// Logger is the structured logging interface shared by the store, transport
// and dev server.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a child logger that prepends the given key-value pairs.
	With(args ...any) Logger
	// Shutdown flushes and releases the underlying file, if any.
	Shutdown() error
}

// jsonLogger writes redacted JSON lines through charmbracelet/log.
type jsonLogger struct {
	clogger  *clog.Logger
	closer   io.Closer
	redactor *redactor
	base     []any
	path     string
	once     *sync.Once
}

// Init builds a file-backed Logger from cfg. A disabled config yields Nop.
// Old files beyond cfg.MaxFiles are rotated out before the new file opens.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return Nop(), nil
	}
	logDir, err := LogDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine log directory: %w", err)
	}
	if err := rotate(logDir, cfg.MaxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}

	name := fmt.Sprintf("%s%s_PID%d_%s%s",
		filePrefix,
		time.Now().Format("20060102_150405"),
		cfg.PID,
		strings.ReplaceAll(cfg.Command, " ", "_"),
		fileSuffix)
	path := filepath.Join(logDir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := newJSONLogger(f, cfg.Level).(*jsonLogger)
	l.clogger = l.clogger.With("pid", cfg.PID, "command", cfg.Command)
	l.closer = f
	l.path = path
	return l, nil
}

// NewWriter returns a JSON Logger writing to w at the given level. It never
// closes w.
func NewWriter(w io.Writer, level string) Logger {
	return newJSONLogger(w, level)
}

func newJSONLogger(w io.Writer, level string) Logger {
	clogger := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           parseLevel(level),
		Formatter:       clog.JSONFormatter,
	})
	return &jsonLogger{
		clogger:  clogger,
		redactor: newRedactor(),
		once:     &sync.Once{},
	}
}

// parseLevel converts a string level to clog.Level.
func parseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *jsonLogger) Debug(msg string, args ...any) { l.log(clog.DebugLevel, msg, args) }
func (l *jsonLogger) Info(msg string, args ...any)  { l.log(clog.InfoLevel, msg, args) }
func (l *jsonLogger) Warn(msg string, args ...any)  { l.log(clog.WarnLevel, msg, args) }
func (l *jsonLogger) Error(msg string, args ...any) { l.log(clog.ErrorLevel, msg, args) }

func (l *jsonLogger) log(level clog.Level, msg string, args []any) {
	kv := make([]any, 0, len(l.base)+len(args))
	kv = append(kv, l.base...)
	kv = append(kv, args...)
	l.clogger.Log(level, msg, l.redactor.redact(kv)...)
}

func (l *jsonLogger) With(args ...any) Logger {
	if len(args)%2 != 0 {
		args = append(args, "(MISSING)")
	}
	base := make([]any, 0, len(l.base)+len(args))
	base = append(base, l.base...)
	base = append(base, args...)
	return &jsonLogger{
		clogger:  l.clogger,
		closer:   l.closer,
		redactor: l.redactor,
		base:     base,
		path:     l.path,
		once:     l.once,
	}
}

func (l *jsonLogger) Shutdown() error {
	var err error
	if l.closer == nil {
		return nil
	}
	l.once.Do(func() { err = l.closer.Close() })
	return err
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (n nopLogger) With(...any) Logger { return n }
func (nopLogger) Shutdown() error      { return nil }

// Nop returns a logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

var (
	globalLogger Logger
	globalMu     sync.RWMutex
)

// InitGlobal initializes the process logger from the loaded configuration and
// mirrors colored CLI output into it. Calling it again replaces the previous
// logger after shutting it down.
func InitGlobal(command string) error {
	cfg := FromGlobalConfig()
	if command != "" {
		cfg.Command = command
	}
	l, err := Init(cfg)
	if err != nil {
		return err
	}

	globalMu.Lock()
	prev := globalLogger
	globalLogger = l
	globalMu.Unlock()
	if prev != nil {
		_ = prev.Shutdown()
	}

	colors.SetLogger(l)
	if path := CurrentLogFile(); path != "" {
		colors.Debug("logging to file:", path)
	}
	return nil
}

// GetGlobal returns the process logger, or Nop when none was initialized.
func GetGlobal() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return Nop()
	}
	return globalLogger
}

// ShutdownGlobal closes the process logger.
func ShutdownGlobal() error {
	globalMu.Lock()
	l := globalLogger
	globalLogger = nil
	globalMu.Unlock()
	colors.SetLogger(nil)
	if l == nil {
		return nil
	}
	return l.Shutdown()
}

// CurrentLogFile returns the active log file path, or "" when logging is
// disabled.
func CurrentLogFile() string {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if l, ok := globalLogger.(*jsonLogger); ok {
		return l.path
	}
	return ""
}
