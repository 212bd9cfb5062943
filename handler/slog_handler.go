package handler

import (
	"context"
	"log/slog"

	"github.com/Philipp01105/consoleline/core"
)

// DefaultSlogChannel is the channel of records created by a SlogHandler
// until WithChannel is used.
const DefaultSlogChannel = "slog"

// slog levels above LevelError that map onto the upper severities.
const (
	SlogLevelNotice    = slog.LevelInfo + 2
	SlogLevelCritical  = slog.LevelError + 4
	SlogLevelAlert     = slog.LevelError + 8
	SlogLevelEmergency = slog.LevelError + 12
)

// SlogHandler is an adapter that implements slog.Handler using a Handler.
// Attributes become the record context; groups become nested maps.
type SlogHandler struct {
	handler Handler
	level   core.Level
	channel string
	context core.Map
	groups  []string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given Handler.
func NewSlogHandler(h Handler, level core.Level) *SlogHandler {
	return &SlogHandler{
		handler: h,
		level:   level,
		channel: DefaultSlogChannel,
	}
}

// WithChannel returns a copy of the handler that stamps records with channel.
func (s *SlogHandler) WithChannel(channel string) *SlogHandler {
	c := *s
	c.channel = channel
	return &c
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return SlogLevelToCore(level) >= s.level
}

// Handle converts a slog.Record to a core.Record and passes it to the wrapped handler.
func (s *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	record := core.Record{
		Time:    r.Time,
		Level:   SlogLevelToCore(r.Level),
		Channel: s.channel,
		Message: r.Message,
		Context: insertAttrs(s.context, s.groups, attrs),
	}
	return s.handler.Handle(&record)
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	c := *s
	c.context = insertAttrs(s.context, s.groups, attrs)
	return &c
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	c := *s
	c.groups = append(s.groups[:len(s.groups):len(s.groups)], name)
	return &c
}

// SlogLevelToCore converts a slog.Level to a core.Level.
func SlogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= SlogLevelEmergency:
		return core.EmergencyLevel
	case level >= SlogLevelAlert:
		return core.AlertLevel
	case level >= SlogLevelCritical:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= SlogLevelNotice:
		return core.NoticeLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// insertAttrs returns a copy of m with attrs stored under the group path.
// Maps along the path are copied; m itself is never modified.
func insertAttrs(m core.Map, path []string, attrs []slog.Attr) core.Map {
	if len(attrs) == 0 {
		return m
	}
	out := m.Clone()
	if len(path) == 0 {
		for _, a := range attrs {
			setAttr(&out, a)
		}
		return out
	}
	var sub core.Map
	if v, ok := out.Get(path[0]); ok {
		sub, _ = v.(core.Map)
	}
	if sub = insertAttrs(sub, path[1:], attrs); sub.Len() > 0 {
		out.Set(path[0], sub)
	}
	return out
}

func setAttr(m *core.Map, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}
		if a.Key == "" {
			for _, ga := range group {
				setAttr(m, ga)
			}
			return
		}
		var sub core.Map
		if v, ok := m.Get(a.Key); ok {
			sub, _ = v.(core.Map)
		}
		sub = sub.Clone()
		for _, ga := range group {
			setAttr(&sub, ga)
		}
		if sub.Len() > 0 {
			m.Set(a.Key, sub)
		}
	case slog.KindString:
		m.Set(a.Key, a.Value.String())
	case slog.KindInt64:
		m.Set(a.Key, a.Value.Int64())
	case slog.KindUint64:
		m.Set(a.Key, a.Value.Uint64())
	case slog.KindFloat64:
		m.Set(a.Key, a.Value.Float64())
	case slog.KindBool:
		m.Set(a.Key, a.Value.Bool())
	case slog.KindTime:
		m.Set(a.Key, a.Value.Time())
	case slog.KindDuration:
		m.Set(a.Key, a.Value.Duration())
	default:
		m.Set(a.Key, a.Value.Any())
	}
}
