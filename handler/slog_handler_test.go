package handler

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Philipp01105/consoleline/core"
	"github.com/Philipp01105/consoleline/outputstyle"
)

func TestSlogHandler_Enabled(t *testing.T) {
	sh := NewSlogHandler(&recordingHandler{}, core.InfoLevel)

	if sh.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Debug should not be enabled when level is Info")
	}
	if !sh.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Info should be enabled when level is Info")
	}
	if !sh.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("Warn should be enabled when level is Info")
	}
	if !sh.Enabled(context.Background(), slog.LevelError) {
		t.Error("Error should be enabled when level is Info")
	}
}

func TestSlogLevelToCore(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want core.Level
	}{
		{slog.LevelDebug - 4, core.DebugLevel},
		{slog.LevelDebug, core.DebugLevel},
		{slog.LevelInfo, core.InfoLevel},
		{SlogLevelNotice, core.NoticeLevel},
		{slog.LevelWarn, core.WarningLevel},
		{slog.LevelError, core.ErrorLevel},
		{SlogLevelCritical, core.CriticalLevel},
		{SlogLevelAlert, core.AlertLevel},
		{SlogLevelEmergency, core.EmergencyLevel},
		{SlogLevelEmergency + 10, core.EmergencyLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := SlogLevelToCore(tt.in); got != tt.want {
				t.Errorf("SlogLevelToCore(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	rec := &recordingHandler{}
	logger := slog.New(NewSlogHandler(rec, core.DebugLevel))

	logger.Info("test message", "key", "value", "count", 42, "ok", true, "wait", time.Second)

	if len(rec.records) != 1 {
		t.Fatalf("records = %d, want 1", len(rec.records))
	}
	r := rec.records[0]
	if r.Message != "test message" || r.Level != core.InfoLevel || r.Channel != DefaultSlogChannel {
		t.Errorf("record = %+v", r)
	}

	if got := strings.Join(r.Context.Keys(), ","); got != "key,count,ok,wait" {
		t.Errorf("context keys = %s, want key,count,ok,wait", got)
	}
	if v, _ := r.Context.Get("count"); v != int64(42) {
		t.Errorf("count = %#v, want int64(42)", v)
	}
	if v, _ := r.Context.Get("wait"); v != time.Second {
		t.Errorf("wait = %#v, want 1s", v)
	}
}

func TestSlogHandler_WithAttrsAndGroups(t *testing.T) {
	rec := &recordingHandler{}
	base := slog.New(NewSlogHandler(rec, core.DebugLevel))

	logger := base.With("service", "api").WithGroup("req").With("id", 7)
	logger.Warn("slow", "ms", 120, slog.Group("client", "ip", "10.0.0.1"))

	// The parent logger must not see the child's attributes.
	base.Info("plain")

	if len(rec.records) != 2 {
		t.Fatalf("records = %d, want 2", len(rec.records))
	}

	ctx := rec.records[0].Context
	if got := strings.Join(ctx.Keys(), ","); got != "service,req" {
		t.Fatalf("context keys = %s, want service,req", got)
	}
	reqVal, _ := ctx.Get("req")
	req, ok := reqVal.(core.Map)
	if !ok {
		t.Fatalf("req = %T, want core.Map", reqVal)
	}
	if got := strings.Join(req.Keys(), ","); got != "id,ms,client" {
		t.Errorf("req keys = %s, want id,ms,client", got)
	}
	clientVal, _ := req.Get("client")
	client, _ := clientVal.(core.Map)
	if ip, _ := client.Get("ip"); ip != "10.0.0.1" {
		t.Errorf("client.ip = %v", ip)
	}

	if rec.records[1].Context.Len() != 0 {
		t.Errorf("parent context = %v, want empty", rec.records[1].Context.Keys())
	}
}

func TestSlogHandler_EmptyGroupsOmitted(t *testing.T) {
	rec := &recordingHandler{}
	logger := slog.New(NewSlogHandler(rec, core.DebugLevel)).WithGroup("unused")

	logger.Info("no attrs", slog.Group("empty"), slog.Attr{})

	if n := rec.records[0].Context.Len(); n != 0 {
		t.Errorf("context has %d entries, want 0", n)
	}
}

func TestSlogHandler_InlineGroup(t *testing.T) {
	rec := &recordingHandler{}
	logger := slog.New(NewSlogHandler(rec, core.DebugLevel))

	logger.Info("inline", slog.Group("", "a", 1, "b", 2))

	if got := strings.Join(rec.records[0].Context.Keys(), ","); got != "a,b" {
		t.Errorf("context keys = %s, want a,b", got)
	}
}

func TestSlogHandler_WithChannel(t *testing.T) {
	rec := &recordingHandler{}
	sh := NewSlogHandler(rec, core.DebugLevel)
	slog.New(sh.WithChannel("cli")).Error("failed")
	slog.New(sh).Error("failed")

	if rec.records[0].Channel != "cli" {
		t.Errorf("Channel = %q, want cli", rec.records[0].Channel)
	}
	if rec.records[1].Channel != DefaultSlogChannel {
		t.Errorf("original handler channel = %q", rec.records[1].Channel)
	}
}

func TestSlogHandler_ThroughConsole(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:    &buf,
		Formatter: plainFormatter(),
		ColorMode: outputstyle.ColorModeNever,
	})
	logger := slog.New(NewSlogHandler(h, core.DebugLevel).WithChannel("cli"))

	logger.Warn("skipping {file}", "file", "a.log")

	out := buf.String()
	if !strings.Contains(out, "WARNING   [cli] skipping a.log [\"file\" => \"a.log\"]") {
		t.Errorf("unexpected output: %q", out)
	}
}
