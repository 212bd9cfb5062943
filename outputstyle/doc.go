// Package outputstyle implements the inline tag syntax used in formatted
// log lines.
//
// A tag opens a style and "</>" closes the innermost one:
//
//	<fg=red;bg=white;options=bold>text</>
//	<comment>text</>
//
// Named styles are info, comment, question and error. A literal "<" is
// written as "\<"; Escape produces that form from arbitrary text.
// Render turns tags into ANSI escape sequences (via github.com/fatih/color)
// or drops them for undecorated output, and Strip removes both tags and
// ANSI sequences.
package outputstyle
