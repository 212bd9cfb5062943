package handler

import (
	"go.uber.org/zap/zapcore"

	"github.com/Philipp01105/consoleline/core"
)

// DefaultZapChannel is the channel of records written by an unnamed zap logger.
const DefaultZapChannel = "zap"

// ZapCore is a zapcore.Core that writes through a Handler. Zap fields
// become the record context in the order they were added; the logger
// name becomes the channel.
type ZapCore struct {
	zapcore.LevelEnabler
	handler Handler
	fields  []zapcore.Field
}

// NewZapCore creates a core writing entries enabled by enab to h.
func NewZapCore(h Handler, enab zapcore.LevelEnabler) *ZapCore {
	return &ZapCore{LevelEnabler: enab, handler: h}
}

// With returns a core that adds fields to every entry.
func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return &clone
}

// Check adds the core to ce when the entry's level is enabled.
func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts the entry to a record and hands it to the handler.
func (c *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	channel := ent.LoggerName
	if channel == "" {
		channel = DefaultZapChannel
	}

	record := core.Record{
		Time:    ent.Time,
		Level:   ZapLevelToCore(ent.Level),
		Channel: channel,
		Message: ent.Message,
		Context: encodeFields(c.fields, fields),
	}
	if ent.Caller.Defined {
		record.Extra.Set("caller", ent.Caller.TrimmedPath())
	}
	if ent.Stack != "" {
		record.Extra.Set("stack", ent.Stack)
	}
	return c.handler.Handle(&record)
}

// Sync is a no-op; handlers write synchronously.
func (c *ZapCore) Sync() error {
	return nil
}

// ZapLevelToCore converts a zapcore.Level to a core.Level.
func ZapLevelToCore(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.FatalLevel:
		return core.EmergencyLevel
	case level >= zapcore.PanicLevel:
		return core.AlertLevel
	case level >= zapcore.DPanicLevel:
		return core.CriticalLevel
	case level >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case level >= zapcore.WarnLevel:
		return core.WarningLevel
	case level >= zapcore.InfoLevel:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// encodeFields runs the fields through a map encoder and keeps the
// order of their first appearance.
func encodeFields(groups ...[]zapcore.Field) core.Map {
	enc := zapcore.NewMapObjectEncoder()
	var order []string
	seen := make(map[string]struct{})
	for _, fields := range groups {
		for _, f := range fields {
			f.AddTo(enc)
			if _, ok := seen[f.Key]; !ok {
				seen[f.Key] = struct{}{}
				order = append(order, f.Key)
			}
		}
	}

	var m core.Map
	for _, k := range order {
		if v, ok := enc.Fields[k]; ok {
			m.Set(k, v)
		}
	}
	return m
}
