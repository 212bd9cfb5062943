// Package logger is the front end of the pipeline: it turns calls such as
// Info or Errorf into core.Record values and hands them to a
// handler.Handler.
//
// A Logger is immutable after construction. The handler, level, channel,
// default fields and extra values are set once via the Builder. With and
// WithChannel return new loggers that share the handler:
//
//	log := logger.NewBuilder().
//	    WithHandler(handler.NewConsoleHandler(handler.ConsoleConfig{})).
//	    WithLevel(logger.DebugLevel).
//	    WithChannel("api").
//	    Build()
//
//	reqLog := log.With(logger.String("request_id", id))
//	reqLog.Info("user {user} signed in", logger.String("user", name))
//
// Fields become the record context in the order they were given, so
// message placeholders such as {user} are filled from them by the
// formatter.
//
// The package initializes a default Logger (InfoLevel, console output
// to stdout) in init(). The package-level functions delegate to it.
package logger
