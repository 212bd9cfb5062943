package logger

import (
	"github.com/Philipp01105/consoleline/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	DebugLevel     = core.DebugLevel
	InfoLevel      = core.InfoLevel
	NoticeLevel    = core.NoticeLevel
	WarningLevel   = core.WarningLevel
	ErrorLevel     = core.ErrorLevel
	CriticalLevel  = core.CriticalLevel
	AlertLevel     = core.AlertLevel
	EmergencyLevel = core.EmergencyLevel
)

// ParseLevel converts a string to a Level. Unknown names yield InfoLevel;
// use core.ParseLevel to detect them.
func ParseLevel(s string) Level {
	l, err := core.ParseLevel(s)
	if err != nil {
		return InfoLevel
	}
	return l
}
