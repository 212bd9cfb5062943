package logger

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/Philipp01105/consoleline/core"
	"github.com/Philipp01105/consoleline/handler"
)

// DefaultChannel is the channel of loggers built without WithChannel.
const DefaultChannel = "app"

// Logger is the main logging interface (immutable)
type Logger struct {
	handler       handler.Handler
	level         core.Level
	channel       string
	fields        []core.Field
	extra         core.Map
	includeCaller bool
	callerSkip    int
	now           func() time.Time
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler       handler.Handler
	level         core.Level
	channel       string
	fields        []core.Field
	extra         core.Map
	includeCaller bool
	now           func() time.Time
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:   core.InfoLevel, // Default level
		channel: DefaultChannel,
		now:     time.Now,
	}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// WithLevel sets the minimum level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithChannel sets the channel name printed with every record
func (b *Builder) WithChannel(channel string) *Builder {
	b.channel = channel
	return b
}

// WithFields adds default context fields to all log records
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithExtra adds a value to the extra map of all log records
func (b *Builder) WithExtra(key string, val any) *Builder {
	b.extra.Set(key, val)
	return b
}

// WithCaller stores the calling file and line under the "caller" extra key
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithClock replaces time.Now as the source of record timestamps
func (b *Builder) WithClock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	fields := make([]core.Field, len(b.fields))
	copy(fields, b.fields)
	return &Logger{
		handler:       b.handler,
		level:         b.level,
		channel:       b.channel,
		fields:        fields,
		extra:         b.extra.Clone(),
		includeCaller: b.includeCaller,
		callerSkip:    3,
		now:           b.now,
	}
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	c := *l
	c.fields = newFields
	return &c
}

// WithChannel creates a new Logger writing to another channel
func (l *Logger) WithChannel(channel string) *Logger {
	c := *l
	c.channel = channel
	return &c
}

// Enabled reports whether records at level would be handled
func (l *Logger) Enabled(level core.Level) bool {
	return l.handler != nil && level >= l.level
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	if level < l.level {
		return
	}
	l.log(level, msg, fields)
}

// log builds the record and hands it to the handler. Handler errors are
// dropped; the logger has nowhere to report them.
func (l *Logger) log(level core.Level, msg string, fields []core.Field) {
	if l.handler == nil {
		return
	}

	record := core.Record{
		Time:    l.now(),
		Level:   level,
		Channel: l.channel,
		Message: msg,
		Context: core.FieldsToMap(core.Map{}, append(l.fields[:len(l.fields):len(l.fields)], fields...)...),
		Extra:   l.extra.Clone(),
	}
	if l.includeCaller {
		record.Extra.Set("caller", caller(l.callerSkip))
	}

	_ = l.handler.Handle(&record)
}

// caller returns "dir/file.go:line" of the frame skip levels up.
func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "???"
	}
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		if j := strings.LastIndexByte(file[:i], '/'); j >= 0 {
			file = file[j+1:]
		}
	}
	return file + ":" + strconv.Itoa(line)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, msg, fields)
}

// Notice logs a notice message
func (l *Logger) Notice(msg string, fields ...core.Field) {
	if core.NoticeLevel < l.level {
		return
	}
	l.log(core.NoticeLevel, msg, fields)
}

// Warning logs a warning message
func (l *Logger) Warning(msg string, fields ...core.Field) {
	if core.WarningLevel < l.level {
		return
	}
	l.log(core.WarningLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, msg, fields)
}

// Critical logs a critical message
func (l *Logger) Critical(msg string, fields ...core.Field) {
	if core.CriticalLevel < l.level {
		return
	}
	l.log(core.CriticalLevel, msg, fields)
}

// Alert logs an alert message
func (l *Logger) Alert(msg string, fields ...core.Field) {
	if core.AlertLevel < l.level {
		return
	}
	l.log(core.AlertLevel, msg, fields)
}

// Emergency logs an emergency message
func (l *Logger) Emergency(msg string, fields ...core.Field) {
	if core.EmergencyLevel < l.level {
		return
	}
	l.log(core.EmergencyLevel, msg, fields)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...any) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...any) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Noticef logs a notice message with formatting
func (l *Logger) Noticef(format string, args ...any) {
	if core.NoticeLevel < l.level {
		return
	}
	l.log(core.NoticeLevel, fmt.Sprintf(format, args...), nil)
}

// Warningf logs a warning message with formatting
func (l *Logger) Warningf(format string, args ...any) {
	if core.WarningLevel < l.level {
		return
	}
	l.log(core.WarningLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...any) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Criticalf logs a critical message with formatting
func (l *Logger) Criticalf(format string, args ...any) {
	if core.CriticalLevel < l.level {
		return
	}
	l.log(core.CriticalLevel, fmt.Sprintf(format, args...), nil)
}

// Alertf logs an alert message with formatting
func (l *Logger) Alertf(format string, args ...any) {
	if core.AlertLevel < l.level {
		return
	}
	l.log(core.AlertLevel, fmt.Sprintf(format, args...), nil)
}

// Emergencyf logs an emergency message with formatting
func (l *Logger) Emergencyf(format string, args ...any) {
	if core.EmergencyLevel < l.level {
		return
	}
	l.log(core.EmergencyLevel, fmt.Sprintf(format, args...), nil)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
