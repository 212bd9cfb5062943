package outputstyle

import "strings"

// Escape makes text safe to embed between tags. Unescaped "<" gets a
// backslash; trailing backslashes are protected so they cannot escape a
// closing tag that follows.
func Escape(text string) string {
	if !strings.ContainsAny(text, "<\\") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + 4)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '<' && (i == 0 || text[i-1] != '\\') {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return escapeTrailingBackslash(b.String())
}

// escapeTrailingBackslash swaps trailing backslashes for NUL bytes,
// which Render turns back into backslashes.
func escapeTrailingBackslash(text string) string {
	trimmed := strings.TrimRight(text, "\\")
	if len(trimmed) == len(text) {
		return text
	}
	return trimmed + strings.Repeat("\x00", len(text)-len(trimmed))
}

func unescape(text string) string {
	if !strings.ContainsAny(text, "\\\x00") {
		return text
	}
	text = strings.ReplaceAll(text, `\<`, "<")
	text = strings.ReplaceAll(text, `\>`, ">")
	return strings.ReplaceAll(text, "\x00", `\`)
}
