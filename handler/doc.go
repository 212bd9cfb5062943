// Package handler provides the Handler interface and its built-in
// implementations for dispatching log records to outputs and bridging
// other logging APIs into the pipeline.
//
// Built-in handlers:
//
//   - ConsoleHandler formats records with a formatter.Formatter, resolves
//     the style tags of the result and writes it to any io.Writer
//     (default: stdout).
//   - MultiHandler fans out a single record to multiple child handlers.
//   - SlogHandler adapts the Handler interface to log/slog.Handler.
//   - ZapCore adapts the Handler interface to zapcore.Core, so a
//     *zap.Logger can write through any handler.
//
// ConsoleHandler counts processed and failed records per level in a
// Stats value. StatsCollector exposes those counters to Prometheus.
package handler
