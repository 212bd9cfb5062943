// Package formatter turns log records into terminal lines.
//
// LineFormatter substitutes a record into a template such as
//
//	%datetime% %start_tag%%level_name%%end_tag% <comment>[%channel%]</> %message%%context%%extra%
//
// Placeholders like {user} in the message are replaced by the matching
// context value, and the context and extra maps are appended as dumps
// produced by package dumper. In single-line mode nested objects are
// truncated to "Class {…}" and the dump collapses onto one line; in
// multiline mode the full tree is printed with indentation.
//
// The returned lines still contain style tags (see package outputstyle).
// Rendering them to ANSI colors, or stripping them, is left to the
// handler that writes the line.
//
// Dump output is collected in pooled bytes.Buffers that are acquired and
// released around every dump, so a LineFormatter carries no mutable state
// between calls and may be shared between goroutines.
package formatter
