package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel is returned by ParseLevel for names that match no severity.
var ErrUnknownLevel = errors.New("unknown log level")

// Level represents the severity level of a log record
type Level int8

const (
	// DebugLevel for detailed debugging information
	DebugLevel Level = iota
	// InfoLevel for interesting events
	InfoLevel
	// NoticeLevel for normal but significant events
	NoticeLevel
	// WarningLevel for exceptional occurrences that are not errors
	WarningLevel
	// ErrorLevel for runtime errors that do not require immediate action
	ErrorLevel
	// CriticalLevel for critical conditions
	CriticalLevel
	// AlertLevel when action must be taken immediately
	AlertLevel
	// EmergencyLevel when the system is unusable
	EmergencyLevel
)

var levelNames = [...]string{
	DebugLevel:     "DEBUG",
	InfoLevel:      "INFO",
	NoticeLevel:    "NOTICE",
	WarningLevel:   "WARNING",
	ErrorLevel:     "ERROR",
	CriticalLevel:  "CRITICAL",
	AlertLevel:     "ALERT",
	EmergencyLevel: "EMERGENCY",
}

// Levels returns every severity in ascending order.
func Levels() []Level {
	return []Level{
		DebugLevel, InfoLevel, NoticeLevel, WarningLevel,
		ErrorLevel, CriticalLevel, AlertLevel, EmergencyLevel,
	}
}

// String returns the display name of the level
func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// Valid reports whether l is one of the eight defined severities.
func (l Level) Valid() bool {
	return l >= DebugLevel && l <= EmergencyLevel
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive
// and accepts the short forms "warn" and "err".
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "NOTICE":
		return NoticeLevel, nil
	case "WARNING", "WARN":
		return WarningLevel, nil
	case "ERROR", "ERR":
		return ErrorLevel, nil
	case "CRITICAL":
		return CriticalLevel, nil
	case "ALERT":
		return AlertLevel, nil
	case "EMERGENCY":
		return EmergencyLevel, nil
	default:
		return InfoLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}
