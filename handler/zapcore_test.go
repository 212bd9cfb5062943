package handler

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Philipp01105/consoleline/core"
)

func TestZapCore_Write(t *testing.T) {
	rec := &recordingHandler{}
	logger := zap.New(NewZapCore(rec, zapcore.DebugLevel)).Named("db")

	logger.With(zap.String("host", "db1")).Warn("slow query {ms}",
		zap.Int("ms", 120),
		zap.Bool("cached", false),
		zap.Duration("timeout", time.Second),
	)

	if len(rec.records) != 1 {
		t.Fatalf("records = %d, want 1", len(rec.records))
	}
	r := rec.records[0]
	if r.Channel != "db" {
		t.Errorf("Channel = %q, want db", r.Channel)
	}
	if r.Level != core.WarningLevel {
		t.Errorf("Level = %v, want WARNING", r.Level)
	}
	if r.Message != "slow query {ms}" {
		t.Errorf("Message = %q", r.Message)
	}
	if got := strings.Join(r.Context.Keys(), ","); got != "host,ms,cached,timeout" {
		t.Errorf("context keys = %s", got)
	}
	if v, _ := r.Context.Get("ms"); v != int64(120) {
		t.Errorf("ms = %#v, want int64(120)", v)
	}
	if v, _ := r.Context.Get("timeout"); v != time.Second {
		t.Errorf("timeout = %#v, want 1s", v)
	}
}

func TestZapCore_LevelEnabler(t *testing.T) {
	rec := &recordingHandler{}
	logger := zap.New(NewZapCore(rec, zapcore.WarnLevel))

	logger.Info("dropped")
	logger.Error("kept", zap.Error(errors.New("boom")))

	if len(rec.records) != 1 {
		t.Fatalf("records = %d, want 1", len(rec.records))
	}
	if rec.records[0].Channel != DefaultZapChannel {
		t.Errorf("Channel = %q, want %q", rec.records[0].Channel, DefaultZapChannel)
	}
	if v, _ := rec.records[0].Context.Get("error"); v != "boom" {
		t.Errorf("error = %#v, want boom", v)
	}
}

func TestZapCore_CallerInExtra(t *testing.T) {
	rec := &recordingHandler{}
	logger := zap.New(NewZapCore(rec, zapcore.DebugLevel), zap.AddCaller())

	logger.Info("with caller")

	caller, ok := rec.records[0].Extra.Get("caller")
	if !ok || !strings.Contains(caller.(string), "zapcore_test.go") {
		t.Errorf("caller = %v", caller)
	}
}

func TestZapCore_WithDoesNotLeak(t *testing.T) {
	rec := &recordingHandler{}
	c := NewZapCore(rec, zapcore.DebugLevel)
	child := c.With([]zapcore.Field{zap.String("a", "1")})

	if err := c.Write(zapcore.Entry{Message: "parent"}, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := child.Write(zapcore.Entry{Message: "child"}, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if rec.records[0].Context.Len() != 0 {
		t.Errorf("parent context = %v", rec.records[0].Context.Keys())
	}
	if rec.records[1].Context.Len() != 1 {
		t.Errorf("child context = %v", rec.records[1].Context.Keys())
	}
	if err := c.Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
}

func TestZapLevelToCore(t *testing.T) {
	tests := []struct {
		in   zapcore.Level
		want core.Level
	}{
		{zapcore.DebugLevel, core.DebugLevel},
		{zapcore.InfoLevel, core.InfoLevel},
		{zapcore.WarnLevel, core.WarningLevel},
		{zapcore.ErrorLevel, core.ErrorLevel},
		{zapcore.DPanicLevel, core.CriticalLevel},
		{zapcore.PanicLevel, core.AlertLevel},
		{zapcore.FatalLevel, core.EmergencyLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := ZapLevelToCore(tt.in); got != tt.want {
				t.Errorf("ZapLevelToCore(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
