package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	// Level is one of zerolog's level names. Empty means info.
	Level         string
	HumanReadable bool
	// Writer defaults to stderr so command output stays clean.
	Writer io.Writer
}

// Logger is a thin zerolog wrapper shared by the primitives. A nil *Logger
// is valid and discards everything, so widgets can be built without one.
type Logger struct {
	base zerolog.Logger
}

// New creates a Logger from opts.
func New(opts Options) (*Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}
	if opts.HumanReadable {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return &Logger{base: zerolog.New(out).Level(level).With().Timestamp().Logger()}, nil
}

func parseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Nop returns a logger that writes nothing.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// Component returns a derived logger tagged with the component name.
func (l *Logger) Component(name string) *Logger {
	return l.derive(func(c zerolog.Context) zerolog.Context { return c.Str("component", name) })
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	return l.derive(func(c zerolog.Context) zerolog.Context { return c.Fields(fields) })
}

func (l *Logger) derive(fn func(zerolog.Context) zerolog.Context) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: fn(l.base.With()).Logger()}
}

// DebugEnabled reports whether debug entries would be written.
func (l *Logger) DebugEnabled() bool {
	return l != nil && l.base.GetLevel() <= zerolog.DebugLevel
}

// Debug writes a debug entry.
func (l *Logger) Debug(msg string) { l.emit(zerolog.DebugLevel, nil, nil, msg) }

// DebugFields writes a debug entry carrying one-off fields.
func (l *Logger) DebugFields(msg string, fields map[string]any) {
	l.emit(zerolog.DebugLevel, nil, fields, msg)
}

// Info writes an informational entry.
func (l *Logger) Info(msg string) { l.emit(zerolog.InfoLevel, nil, nil, msg) }

// Warn writes a warning.
func (l *Logger) Warn(msg string) { l.emit(zerolog.WarnLevel, nil, nil, msg) }

// Error writes an error entry with err attached when it is not nil.
func (l *Logger) Error(err error, msg string) { l.emit(zerolog.ErrorLevel, err, nil, msg) }

func (l *Logger) emit(level zerolog.Level, err error, fields map[string]any, msg string) {
	if l == nil {
		return
	}
	event := l.base.WithLevel(level)
	if event == nil {
		return
	}
	if err != nil {
		event = event.Err(err)
	}
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}
