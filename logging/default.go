package logging

import (
	"context"
	"io"
	"maps"
	"os"

	"github.com/rs/zerolog"
)

// DefaultLogger is a structured logger backed by zerolog.
// Debug/Info -> stdout
// Warn/Error/Fatal -> stderr
type DefaultLogger struct {
	stdout zerolog.Logger
	stderr zerolog.Logger
	level  *Level
	fields Fields
}

// NewDefaultLogger creates a logger writing JSON lines to stdout/stderr
func NewDefaultLogger() *DefaultLogger {
	return NewLogger(os.Stdout, os.Stderr)
}

// NewConsoleLogger creates a logger with human-readable output on out and
// errOut, colored only when stderr is a terminal
func NewConsoleLogger(out, errOut io.Writer) *DefaultLogger {
	noColor := !isTerminal()
	return NewLogger(
		zerolog.ConsoleWriter{Out: out, NoColor: noColor},
		zerolog.ConsoleWriter{Out: errOut, NoColor: noColor},
	)
}

// NewLogger creates a logger writing low-severity records to out and
// warnings and errors to errOut
func NewLogger(out, errOut io.Writer) *DefaultLogger {
	level := InfoLevel
	return &DefaultLogger{
		stdout: zerolog.New(out).With().Timestamp().Logger(),
		stderr: zerolog.New(errOut).With().Timestamp().Logger(),
		level:  &level,
		fields: make(Fields),
	}
}

func isTerminal() bool {
	if fileInfo, _ := os.Stderr.Stat(); fileInfo != nil {
		return (fileInfo.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func (d *DefaultLogger) event(level Level) *zerolog.Event {
	switch level {
	case DebugLevel:
		return d.stdout.Debug()
	case InfoLevel:
		return d.stdout.Info()
	case WarnLevel:
		return d.stderr.Warn()
	case ErrorLevel:
		return d.stderr.Error()
	default:
		// WithLevel does not exit the process, log() does that for FatalLevel
		return d.stderr.WithLevel(zerolog.FatalLevel)
	}
}

func (d *DefaultLogger) log(level Level, err error, msg string, fields ...Fields) {
	if level < *d.level {
		return
	}

	allFields := make(Fields, len(d.fields))
	maps.Copy(allFields, d.fields)
	for _, f := range fields {
		maps.Copy(allFields, f)
	}

	ev := d.event(level)
	if err != nil {
		ev = ev.Err(err)
	}
	if len(allFields) > 0 {
		ev = ev.Fields(map[string]any(allFields))
	}
	ev.Msg(msg)

	if level == FatalLevel {
		os.Exit(1)
	}
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.log(DebugLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.log(InfoLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.log(WarnLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.log(ErrorLevel, err, msg, fields...)
}

func (d *DefaultLogger) Fatal(err error, msg string, fields ...Fields) {
	d.log(FatalLevel, err, msg, fields...)
}

// WithFields returns a child logger. Children share the parent's level.
func (d *DefaultLogger) WithFields(fields Fields) Logger {
	newFields := make(Fields, len(d.fields)+len(fields))
	maps.Copy(newFields, d.fields)
	maps.Copy(newFields, fields)

	return &DefaultLogger{
		stdout: d.stdout,
		stderr: d.stderr,
		level:  d.level,
		fields: newFields,
	}
}

func (d *DefaultLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := FieldsFromContext(ctx); ok {
		return d.WithFields(fields)
	}
	return d
}

func (d *DefaultLogger) SetLevel(level Level) {
	*d.level = level
}

// NoOpLogger discards everything
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(msg string, fields ...Fields)            {}
func (n *NoOpLogger) Info(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Warn(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Error(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) Fatal(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) WithFields(fields Fields) Logger               { return n }
func (n *NoOpLogger) WithContext(ctx context.Context) Logger        { return n }
func (n *NoOpLogger) SetLevel(level Level)                          {}
