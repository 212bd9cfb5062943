package outputstyle

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"tag", "<b>", `\<b>`},
		{"arrow", `"a" => 1`, `"a" => 1`},
		{"already escaped", `\<b`, `\<b`},
		{"trailing backslash", `dir\`, "dir\x00"},
		{"inner backslash", `C:\tmp`, `C:\tmp`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}

func TestRender_Undecorated(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no tags", "plain text", "plain text"},
		{"named", "<info>ok</info> done", "ok done"},
		{"generic close", "<fg=red;bg=white>x</> y", "x y"},
		{"nested", "<comment>a <error>b</> c</>", "a b c"},
		{"escaped", Escape("<b>") + " and " + Escape(`C:\`), `<b> and C:\`},
		{"unknown style kept", "<nope>x</>", "<nope>x"},
		{"unbalanced close", "x</>", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.in, false))
		})
	}
}

func TestRender_Decorated(t *testing.T) {
	got := Render("<fg=green>ok</> rest", true)
	assert.Equal(t, "\x1b[32mok\x1b[0m rest", got)

	got = Render("<fg=white;bg=red>boom</>", true)
	assert.True(t, strings.HasPrefix(got, "\x1b[37;41mboom\x1b["), got)

	got = Render("<fg=#ff8000;options=bold>hex</>", true)
	assert.True(t, strings.HasPrefix(got, "\x1b[38;2;255;128;0;1mhex\x1b["), got)
}

func TestStrip(t *testing.T) {
	colored := Render("<comment>[app]</> <fg=red>x</>", true)
	require.Contains(t, colored, "\x1b[")

	assert.Equal(t, "[app] x", Strip(colored))
	assert.Equal(t, "[app] x", Strip("<comment>[app]</> <fg=red>x</>"))
}

func TestParseColorMode(t *testing.T) {
	for _, in := range []string{"", "auto", "always", "never"} {
		_, err := ParseColorMode(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestColorMode_Decorated(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, ColorModeAlways.Decorated(&buf))
	assert.False(t, ColorModeNever.Decorated(&buf))
	assert.False(t, ColorModeAuto.Decorated(&buf), "buffers are never terminals")
}
