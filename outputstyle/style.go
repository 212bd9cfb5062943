package outputstyle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var foregrounds = map[string]color.Attribute{
	"default":        39,
	"black":          color.FgBlack,
	"red":            color.FgRed,
	"green":          color.FgGreen,
	"yellow":         color.FgYellow,
	"blue":           color.FgBlue,
	"magenta":        color.FgMagenta,
	"cyan":           color.FgCyan,
	"white":          color.FgWhite,
	"gray":           color.FgHiBlack,
	"bright-red":     color.FgHiRed,
	"bright-green":   color.FgHiGreen,
	"bright-yellow":  color.FgHiYellow,
	"bright-blue":    color.FgHiBlue,
	"bright-magenta": color.FgHiMagenta,
	"bright-cyan":    color.FgHiCyan,
	"bright-white":   color.FgHiWhite,
}

var options = map[string]color.Attribute{
	"bold":       color.Bold,
	"underscore": color.Underline,
	"blink":      color.BlinkSlow,
	"reverse":    color.ReverseVideo,
	"conceal":    color.Concealed,
}

// named styles available as <info>, <comment>, <question> and <error>.
var named = map[string]string{
	"info":     "fg=green",
	"comment":  "fg=yellow",
	"question": "fg=black;bg=cyan",
	"error":    "fg=white;bg=red",
}

var styleCache sync.Map // def string -> *color.Color

// parseStyle converts a tag body such as "fg=red;options=bold" into a color.
func parseStyle(def string) (*color.Color, error) {
	if c, ok := styleCache.Load(def); ok {
		return c.(*color.Color), nil
	}

	body := def
	if n, ok := named[strings.ToLower(def)]; ok {
		body = n
	}

	var attrs []color.Attribute
	for _, part := range strings.Split(body, ";") {
		key, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, fmt.Errorf("invalid style %q", def)
		}
		val = strings.ToLower(strings.TrimSpace(val))
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "fg":
			a, err := colorAttrs(val, 0)
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, a...)
		case "bg":
			a, err := colorAttrs(val, 10)
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, a...)
		case "options":
			for _, o := range strings.Split(val, ",") {
				a, ok := options[strings.TrimSpace(o)]
				if !ok {
					return nil, fmt.Errorf("invalid option %q in style %q", o, def)
				}
				attrs = append(attrs, a)
			}
		default:
			return nil, fmt.Errorf("invalid style %q", def)
		}
	}

	c := color.New(attrs...)
	c.EnableColor()
	styleCache.Store(def, c)
	return c, nil
}

// colorAttrs resolves a color name or #rrggbb value. offset is 0 for
// foreground and 10 for background codes.
func colorAttrs(name string, offset color.Attribute) ([]color.Attribute, error) {
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		rgb, err := strconv.ParseUint(name[1:], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q", name)
		}
		return []color.Attribute{
			38 + offset, 2,
			color.Attribute(rgb >> 16 & 0xff),
			color.Attribute(rgb >> 8 & 0xff),
			color.Attribute(rgb & 0xff),
		}, nil
	}
	a, ok := foregrounds[name]
	if !ok {
		return nil, fmt.Errorf("invalid color %q", name)
	}
	return []color.Attribute{a + offset}, nil
}

var (
	tagPattern  = regexp.MustCompile(`(?i)<(([a-z](?:[^\\<>]*))|/([a-z][^\\<>]*)?)>`)
	ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")
)

// Render resolves tags in text. With decorated set, styled segments are
// wrapped in ANSI sequences; otherwise tags are dropped. Tags that do not
// describe a valid style are kept as literal text.
func Render(text string, decorated bool) string {
	if !strings.ContainsAny(text, "<\\\x00") {
		return text
	}

	var (
		out    strings.Builder
		stack  []*color.Color
		offset int
	)
	emit := func(segment string) {
		if segment == "" {
			return
		}
		segment = unescape(segment)
		if decorated && len(stack) > 0 {
			segment = stack[len(stack)-1].Sprint(segment)
		}
		out.WriteString(segment)
	}

	for _, m := range tagPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		if start > 0 && text[start-1] == '\\' {
			continue
		}
		emit(text[offset:start])
		offset = end

		if text[start+1] == '/' {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}
		c, err := parseStyle(text[m[4]:m[5]])
		if err != nil {
			emit(text[start:end])
			continue
		}
		stack = append(stack, c)
	}
	emit(text[offset:])
	return out.String()
}

// Strip removes tags and ANSI escape sequences, leaving the plain text.
func Strip(text string) string {
	return ansiPattern.ReplaceAllString(Render(text, false), "")
}
