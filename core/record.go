package core

import "time"

// Record represents one structured log event
type Record struct {
	Time    time.Time
	Level   Level
	Channel string
	Message string
	Context Map
	Extra   Map
}

// NewRecord creates a record stamped with the current time.
func NewRecord(level Level, channel, msg string) Record {
	return Record{
		Time:    time.Now(),
		Level:   level,
		Channel: channel,
		Message: msg,
	}
}

// WithMessage returns a copy of r with the message replaced.
func (r Record) WithMessage(msg string) Record {
	r.Message = msg
	return r
}
