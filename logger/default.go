package logger

import (
	"fmt"
	"os"
	"sync"

	"github.com/Philipp01105/consoleline/core"
	"github.com/Philipp01105/consoleline/handler"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	// Initialize default logger with console handler
	h := handler.NewConsoleHandler(handler.ConsoleConfig{Writer: os.Stdout})

	defaultLogger = NewBuilder().
		WithHandler(h).
		WithLevel(core.InfoLevel).
		Build()
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...core.Field) {
	logDefault(core.DebugLevel, msg, fields)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...core.Field) {
	logDefault(core.InfoLevel, msg, fields)
}

// Notice logs a notice message using the default logger
func Notice(msg string, fields ...core.Field) {
	logDefault(core.NoticeLevel, msg, fields)
}

// Warning logs a warning message using the default logger
func Warning(msg string, fields ...core.Field) {
	logDefault(core.WarningLevel, msg, fields)
}

// Error logs an error message using the default logger
func Error(msg string, fields ...core.Field) {
	logDefault(core.ErrorLevel, msg, fields)
}

// Critical logs a critical message using the default logger
func Critical(msg string, fields ...core.Field) {
	logDefault(core.CriticalLevel, msg, fields)
}

// Alert logs an alert message using the default logger
func Alert(msg string, fields ...core.Field) {
	logDefault(core.AlertLevel, msg, fields)
}

// Emergency logs an emergency message using the default logger
func Emergency(msg string, fields ...core.Field) {
	logDefault(core.EmergencyLevel, msg, fields)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...any) {
	logDefaultf(core.DebugLevel, format, args)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...any) {
	logDefaultf(core.InfoLevel, format, args)
}

// Warningf logs a formatted warning message using the default logger
func Warningf(format string, args ...any) {
	logDefaultf(core.WarningLevel, format, args)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...any) {
	logDefaultf(core.ErrorLevel, format, args)
}

// logDefault logs through the default logger one frame further up, so
// the recorded caller is the code calling the package function.
func logDefault(level core.Level, msg string, fields []core.Field) {
	l := *Default()
	if level < l.level {
		return
	}
	l.callerSkip++
	l.log(level, msg, fields)
}

func logDefaultf(level core.Level, format string, args []any) {
	l := *Default()
	if level < l.level {
		return
	}
	l.callerSkip++
	l.log(level, fmt.Sprintf(format, args...), nil)
}

// With creates a new logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}
