// Package log provides category logging for letter.
// Logging is off until Init is called, which cmd does only when --debug or
// LETTER_DEBUG is set. Every entry is also published on a broker so the
// in-app debug panel can tail it.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/zjrosen/letter/internal/pubsub"
)

// EnvDebug enables logging when set to any non-empty value.
const EnvDebug = "LETTER_DEBUG"

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatEditor  Category = "editor"  // Line buffer structural changes
	CatChord   Category = "chord"   // Chord matching
	CatInput   Category = "input"   // Key event source
	CatConfig  Category = "config"  // Configuration loading/saving
	CatWatcher Category = "watcher" // Config file watcher
	CatUI      Category = "ui"      // Host model updates
)

// Logger writes formatted entries to a sink and a broker.
type Logger struct {
	mu       sync.Mutex
	closer   io.Closer
	writer   io.Writer
	minLevel Level
	broker   *pubsub.Broker[string]
}

var (
	mu            sync.RWMutex
	defaultLogger *Logger
)

// Init opens path for appending and installs it as the global sink.
// The returned func closes the file and disables logging again.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // G304: path is the user-chosen debug log
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	install(newLogger(f, f))
	return func() {
		install(nil)
		_ = f.Close()
	}, nil
}

// InitWriter installs w as the global sink. Used by tests.
func InitWriter(w io.Writer) func() {
	install(newLogger(w, nil))
	return func() { install(nil) }
}

// Enabled reports whether debug logging was requested through the environment.
func Enabled(debugFlag bool) bool {
	return debugFlag || os.Getenv(EnvDebug) != ""
}

func newLogger(w io.Writer, c io.Closer) *Logger {
	return &Logger{
		writer:   w,
		closer:   c,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	}
}

func install(l *Logger) {
	mu.Lock()
	old := defaultLogger
	defaultLogger = l
	mu.Unlock()

	if old != nil {
		old.broker.Close()
	}
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetMinLevel sets the minimum level written.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs at error level with err attached as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

// format renders: 2025-12-06T10:45:00 [DEBUG] [chord] matched sequence=dd
func format(now time.Time, level Level, cat Category, msg string, fields []any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", now.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	return b.String()
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.minLevel {
		return
	}

	entry := format(time.Now(), level, cat, msg, fields)
	_, _ = io.WriteString(l.writer, entry+"\n")
	l.broker.Publish(entry)
}

// Listener tails log entries for a tea program.
type Listener = pubsub.Listener[string]

// NewListener subscribes to log entries until ctx is cancelled.
// Returns nil when logging is off.
func NewListener(ctx context.Context) *Listener {
	l := current()
	if l == nil {
		return nil
	}
	return pubsub.NewListener(ctx, l.broker)
}
