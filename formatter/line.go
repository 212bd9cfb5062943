package formatter

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/Philipp01105/consoleline/core"
	"github.com/Philipp01105/consoleline/dumper"
	"github.com/Philipp01105/consoleline/outputstyle"
)

// levelColors holds the style of the level tag for every severity
var levelColors = [...]string{
	core.DebugLevel:     "fg=white",
	core.InfoLevel:      "fg=green",
	core.NoticeLevel:    "fg=blue",
	core.WarningLevel:   "fg=cyan",
	core.ErrorLevel:     "fg=yellow",
	core.CriticalLevel:  "fg=red",
	core.AlertLevel:     "fg=red",
	core.EmergencyLevel: "fg=white;bg=red",
}

// LevelStyle returns the tag style used for level l.
func LevelStyle(l core.Level) string {
	if l.Valid() {
		return levelColors[l]
	}
	return "fg=default"
}

const dumpFlags = dumper.LightArray | dumper.CommaSeparator

// LineFormatter formats records as colorized console lines
type LineFormatter struct {
	cfg    Config
	colors bool
	// cloner dumps context and extra in the configured mode.
	cloner *dumper.Cloner
	// inline dumps placeholder values on a single line.
	inline *dumper.Cloner
}

// NewLineFormatter creates a line formatter. Unset options take the
// documented defaults.
func NewLineFormatter(cfg Config) *LineFormatter {
	cfg = cfg.withDefaults()
	return &LineFormatter{
		cfg:    cfg,
		colors: *cfg.Colors,
		cloner: dumper.NewCloner(objectCaster{multiline: cfg.Multiline}),
		inline: dumper.NewCloner(objectCaster{}),
	}
}

// Config returns the effective configuration.
func (f *LineFormatter) Config() Config {
	return f.cfg
}

// Format renders r using the configured template. r is not modified.
func (f *LineFormatter) Format(r *core.Record) string {
	rec := f.replacePlaceholder(*r)

	var startTag, endTag string
	if f.colors {
		startTag = "<" + LevelStyle(rec.Level) + ">"
		endTag = "</>"
	}

	return strings.NewReplacer(
		"%datetime%", rec.Time.Format(f.cfg.DateFormat),
		"%start_tag%", startTag,
		"%level_name%", fmt.Sprintf(f.cfg.LevelNameFormat, rec.Level.String()),
		"%end_tag%", endTag,
		"%channel%", rec.Channel,
		"%message%", rec.Message,
		"%context%", f.segment(rec.Context),
		"%extra%", f.segment(rec.Extra),
	).Replace(f.cfg.Format)
}

// FormatBatch formats every record on its own, preserving order.
func (f *LineFormatter) FormatBatch(rs []core.Record) []string {
	out := make([]string, len(rs))
	for i := range rs {
		out[i] = f.Format(&rs[i])
	}
	return out
}

// segment renders the context or extra part of a line.
func (f *LineFormatter) segment(m core.Map) string {
	if f.cfg.IgnoreEmptyContextAndExtra && m.Len() == 0 {
		return ""
	}
	sep := " "
	if f.cfg.Multiline {
		sep = "\n"
	}
	return sep + outputstyle.Escape(f.dumpData(m, nil))
}

// replacePlaceholder substitutes {key} tokens in the message with the
// matching context values. Substitution is a single pass over the
// original message; replaced text is never scanned again.
func (f *LineFormatter) replacePlaceholder(r core.Record) core.Record {
	if !strings.Contains(r.Message, "{") {
		return r
	}

	type replacement struct{ token, value string }
	repl := make([]replacement, 0, r.Context.Len())
	r.Context.Range(func(key string, val any) bool {
		v := trimQuotes(f.dump(f.inline, val, false, false))
		repl = append(repl, replacement{
			token: "{" + key + "}",
			value: "<comment>" + outputstyle.Escape(v) + "</>",
		})
		return true
	})
	if len(repl) == 0 {
		return r
	}

	// The replacer prefers earlier pairs on overlap; longest token first.
	sort.SliceStable(repl, func(i, j int) bool {
		return len(repl[i].token) > len(repl[j].token)
	})
	pairs := make([]string, 0, 2*len(repl))
	for _, p := range repl {
		pairs = append(pairs, p.token, p.value)
	}
	return r.WithMessage(strings.NewReplacer(pairs...).Replace(r.Message))
}

// trimQuotes removes one pair of double quotes around a dumped string.
func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// dumpData renders v with the configured mode. colors overrides the
// configured color setting when non-nil.
func (f *LineFormatter) dumpData(v any, colors *bool) string {
	useColors := f.colors
	if colors != nil {
		useColors = *colors
	}
	return f.dump(f.cloner, v, useColors, f.cfg.Multiline)
}

func (f *LineFormatter) dump(cloner *dumper.Cloner, v any, colors, multiline bool) string {
	if cloner == nil {
		return ""
	}

	data := clonedData(v)
	if data == nil {
		data = cloner.Clone(v)
	}
	data = data.WithRefHandles(false)

	buf := getBuffer()
	defer putBuffer(buf)

	sink := dumper.WriterSink(buf)
	if !multiline {
		sink = lineFilter{buf: buf}.echoLine
	}
	d := dumper.NewCliDumper(sink, dumpFlags)
	d.SetColors(colors)
	d.Dump(data)

	return strings.TrimRight(buf.String(), " \t\r\n")
}

// clonedData returns v's tree when v already is one, or wraps one under
// dumper.DataKey.
func clonedData(v any) *dumper.Data {
	var wrapped any
	switch v := v.(type) {
	case *dumper.Data:
		return v
	case core.Map:
		wrapped, _ = v.Get(dumper.DataKey)
	case map[string]any:
		wrapped = v[dumper.DataKey]
	default:
		return nil
	}
	d, _ := wrapped.(*dumper.Data)
	return d
}

// lineFilter collapses a dump onto one line.
type lineFilter struct {
	buf *bytes.Buffer
}

// echoLine keeps every line except the closing flush at depth -1.
func (l lineFilter) echoLine(line string, depth int, _ string) {
	if depth == -1 {
		return
	}
	l.buf.WriteString(line)
	if strings.HasSuffix(line, ",") {
		l.buf.WriteByte(' ')
	}
}

// objectCaster limits single-line dumps to one level of objects.
type objectCaster struct {
	multiline bool
}

// Cast cuts nested objects other than date/time values unless the
// formatter prints multi-line dumps.
func (c objectCaster) Cast(v any, fields []dumper.Field, stub *dumper.Stub, nested bool) []dumper.Field {
	if c.multiline {
		return fields
	}
	if nested && !dumper.IsDateTime(v) {
		stub.Cut = true
		return nil
	}
	return fields
}
