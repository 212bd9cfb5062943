package dumper

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Flags tune the CliDumper output.
type Flags uint8

const (
	// LightArray prints "[" instead of "array:N [" and hides indexed keys.
	LightArray Flags = 1 << iota
	// CommaSeparator ends every array or object entry but the last with ",".
	CommaSeparator
)

// LineSink receives rendered lines without a trailing newline. depth is the
// nesting level of the line; -1 marks the flush that ends every dump.
type LineSink func(line string, depth int, indentPad string)

// WriterSink returns a LineSink that writes indented lines to w.
func WriterSink(w io.Writer) LineSink {
	return func(line string, depth int, indentPad string) {
		if depth == -1 {
			return
		}
		_, _ = io.WriteString(w, strings.Repeat(indentPad, depth)+line+"\n")
	}
}

// style names the token classes that receive their own color.
type style uint8

const (
	styleDefault style = iota
	styleNum
	styleConst
	styleStr
	styleNote
	styleRef
	styleMeta
	styleKey
	styleIndex
)

// ANSI 256-color palette for dump tokens.
var styles = [...]*color.Color{
	styleDefault: color.New(38, 5, 208),
	styleNum:     color.New(color.Bold, 38, 5, 38),
	styleConst:   color.New(color.Bold, 38, 5, 208),
	styleStr:     color.New(color.Bold, 38, 5, 113),
	styleNote:    color.New(38, 5, 38),
	styleRef:     color.New(38, 5, 247),
	styleMeta:    color.New(38, 5, 170),
	styleKey:     color.New(38, 5, 113),
	styleIndex:   color.New(38, 5, 38),
}

func init() {
	// Dump colors are switched per dumper, independent of color.NoColor.
	for _, s := range styles {
		s.EnableColor()
	}
}

// CliDumper renders Data trees as text lines.
// A CliDumper is not safe for concurrent use; create one per goroutine.
type CliDumper struct {
	sink      LineSink
	flags     Flags
	colors    bool
	indentPad string
	refs      bool
	line      strings.Builder
}

// NewCliDumper creates a dumper writing to sink. A nil sink discards output.
func NewCliDumper(sink LineSink, flags Flags) *CliDumper {
	if sink == nil {
		sink = func(string, int, string) {}
	}
	return &CliDumper{sink: sink, flags: flags, indentPad: "  "}
}

// SetColors enables or disables ANSI colors in subsequent dumps.
func (d *CliDumper) SetColors(enabled bool) {
	d.colors = enabled
}

// SetIndentPad changes the string repeated once per depth level.
func (d *CliDumper) SetIndentPad(pad string) {
	d.indentPad = pad
}

// Dump renders data into the sink.
func (d *CliDumper) Dump(data *Data) {
	if data == nil || data.root == nil {
		return
	}
	d.refs = data.refHandles
	d.line.Reset()
	d.node(data.root, 0)
	d.flush(0)
	d.flush(-1)
}

func (d *CliDumper) flush(depth int) {
	d.sink(d.line.String(), depth, d.indentPad)
	d.line.Reset()
}

func (d *CliDumper) write(s style, text string) {
	if d.colors && text != "" {
		text = styles[s].Sprint(text)
	}
	d.line.WriteString(text)
}

func (d *CliDumper) node(n *Node, depth int) {
	switch n.Kind {
	case KindNull:
		d.write(styleConst, "null")
	case KindBool:
		d.write(styleConst, strconv.FormatBool(n.Scalar.(bool)))
	case KindInt:
		d.write(styleNum, strconv.FormatInt(n.Scalar.(int64), 10))
	case KindUint:
		d.write(styleNum, strconv.FormatUint(n.Scalar.(uint64), 10))
	case KindFloat:
		d.write(styleNum, formatFloat(n.Scalar.(float64)))
	case KindString:
		d.write(styleDefault, `"`)
		d.write(styleStr, escapeString(n.Scalar.(string)))
		d.write(styleDefault, `"`)
	case KindBinary:
		d.write(styleDefault, `b"`)
		d.write(styleStr, escapeString(n.Scalar.(string)))
		d.write(styleDefault, `"`)
	case KindConst:
		d.write(styleConst, n.Scalar.(string))
	case KindRecursion:
		d.write(styleRef, "*RECURSION*")
	case KindArray:
		d.array(n, depth)
	case KindObject:
		d.object(n, depth)
	}
}

func (d *CliDumper) array(n *Node, depth int) {
	if d.flags&LightArray == 0 {
		d.write(styleNote, "array:"+strconv.Itoa(n.Stub.Count))
		d.write(styleDefault, " ")
	}
	d.children(n, depth, "[", "]")
}

func (d *CliDumper) object(n *Node, depth int) {
	d.write(styleNote, n.Stub.Class)
	d.write(styleDefault, " ")
	open := "{"
	if d.refs && n.Stub.Handle > 0 {
		d.write(styleDefault, open)
		d.write(styleRef, "#"+strconv.Itoa(n.Stub.Handle))
		if n.Stub.Cut && len(n.Children) == 0 {
			d.write(styleDefault, " ")
			d.write(styleMeta, "…")
			d.write(styleDefault, "}")
			return
		}
		open = ""
	}
	d.children(n, depth, open, "}")
}

func (d *CliDumper) children(n *Node, depth int, open, closing string) {
	if len(n.Children) == 0 {
		d.write(styleDefault, open)
		if n.Stub.Cut {
			d.write(styleMeta, "…")
		}
		d.write(styleDefault, closing)
		return
	}

	d.write(styleDefault, open)
	d.flush(depth)
	last := len(n.Children) - 1
	for i, c := range n.Children {
		d.key(n, c)
		d.node(c.Node, depth+1)
		if d.flags&CommaSeparator != 0 && (i < last || n.Stub.Cut) {
			// Left unstyled so line sinks can recognize the separator.
			d.line.WriteByte(',')
		}
		d.flush(depth + 1)
	}
	if n.Stub.Cut {
		d.write(styleMeta, "…")
		d.flush(depth + 1)
	}
	d.write(styleDefault, closing)
}

func (d *CliDumper) key(parent *Node, c Child) {
	switch {
	case parent.Kind == KindObject:
		d.write(styleMeta, "+")
		d.write(styleKey, c.Key)
		d.write(styleDefault, ": ")
	case parent.Stub.Indexed:
		if d.flags&LightArray != 0 {
			return
		}
		d.write(styleIndex, c.Key)
		d.write(styleDefault, " ")
		d.write(styleMeta, "=>")
		d.write(styleDefault, " ")
	default:
		if c.QuotedKey {
			d.write(styleDefault, `"`)
			d.write(styleKey, escapeString(c.Key))
			d.write(styleDefault, `"`)
		} else {
			d.write(styleIndex, escapeString(c.Key))
		}
		d.write(styleDefault, " ")
		d.write(styleMeta, "=>")
		d.write(styleDefault, " ")
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NAN"
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e21) {
		format = 'g'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// escapeString keeps dumped strings on one line.
func escapeString(s string) string {
	if !needsEscape(s) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case utf8.RuneError:
			b.WriteString(`�`)
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteString(`\x`)
				b.WriteString(strconv.FormatInt(int64(r)|0x100, 16)[1:])
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7f {
			return true
		}
	}
	return !utf8.ValidString(s)
}
