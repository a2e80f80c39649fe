// Package logging writes logfmt lines for the wizard. Interactive runs own
// the terminal, so the UI logs to a file under the data directory.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var levelNames = [...]string{Debug: "debug", Info: "info", Warn: "warn", Error: "error"}

func (l Level) String() string {
	if l < Debug || l > Error {
		return "info"
	}
	return levelNames[l]
}

func (l Level) slog() slog.Level {
	switch l {
	case Debug:
		return slog.LevelDebug
	case Warn:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	case Info:
		return slog.LevelInfo
	}
	return slog.LevelError + 4
}

func ParseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	}
	return Info
}

type Field struct {
	Key   string
	Value any
}

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Enabled(level Level) bool
}

// maxLogSize is the size past which Open moves the log aside to path.1.
const maxLogSize = 1 << 20

type logger struct {
	sl    *slog.Logger
	level Level
}

// New returns a logger writing logfmt lines at level and above to out.
func New(out io.Writer, level Level) Logger {
	return newWithClock(out, level, nil)
}

func newWithClock(out io.Writer, level Level, now func() time.Time) *logger {
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level: level.slog(),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch v := a.Value.Any().(type) {
			case time.Time:
				if a.Key != slog.TimeKey {
					return a
				}
				if now != nil {
					v = now()
				}
				return slog.String("ts", v.UTC().Format(time.RFC3339Nano))
			case slog.Level:
				if a.Key != slog.LevelKey {
					return a
				}
				return slog.String(slog.LevelKey, fromSlog(v).String())
			}
			return a
		},
	}
	return &logger{sl: slog.New(slog.NewTextHandler(out, opts)), level: level}
}

func fromSlog(l slog.Level) Level {
	switch {
	case l >= slog.LevelError:
		return Error
	case l >= slog.LevelWarn:
		return Warn
	case l >= slog.LevelInfo:
		return Info
	}
	return Debug
}

// Nop discards everything.
func Nop() Logger {
	return &logger{sl: slog.New(slog.DiscardHandler), level: Error + 1}
}

// Open appends to the log file at path, creating its directory. A file
// already past maxLogSize is renamed to path.1 first, replacing any older
// backup.
func Open(path string, level Level) (Logger, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil, errors.New("log path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	if err := rotate(path); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(file, level), file, nil
}

func rotate(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.Size() < maxLogSize) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat log file: %w", err)
	}
	if err := os.Rename(path, path+".1"); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}

func (l *logger) Enabled(level Level) bool {
	return l != nil && level >= l.level
}

func (l *logger) With(fields ...Field) Logger {
	if l == nil {
		return Nop()
	}
	return &logger{sl: l.sl.With(attrs(fields)...), level: l.level}
}

func (l *logger) Debug(msg string, fields ...Field) { l.log(Debug, msg, fields) }
func (l *logger) Info(msg string, fields ...Field)  { l.log(Info, msg, fields) }
func (l *logger) Warn(msg string, fields ...Field)  { l.log(Warn, msg, fields) }
func (l *logger) Error(msg string, fields ...Field) { l.log(Error, msg, fields) }

func (l *logger) log(level Level, msg string, fields []Field) {
	if !l.Enabled(level) {
		return
	}
	l.sl.Log(context.Background(), level.slog(), msg, attrs(fields)...)
}

func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, slog.Any(f.Key, value(f.Value)))
	}
	return out
}

// value flattens the types slog would otherwise print with Go syntax.
func value(v any) any {
	switch v := v.(type) {
	case nil:
		return "null"
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case []string:
		return strings.Join(v, ",")
	}
	return v
}

// NewSessionID tags every line written by one run of the wizard.
func NewSessionID() string {
	return uuid.NewString()
}
