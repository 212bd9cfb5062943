package handler

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/Philipp01105/consoleline/core"
	"github.com/Philipp01105/consoleline/formatter"
	"github.com/Philipp01105/consoleline/outputstyle"
)

// ErrClosed is returned by Handle after Close.
var ErrClosed = errors.New("handler is closed")

// ConsoleHandler writes formatted log records to stdout/stderr
type ConsoleHandler struct {
	writer    io.Writer
	formatter formatter.Formatter
	decorated bool
	mu        sync.Mutex
	closed    bool
	stats     *Stats
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: LineFormatter with default options)
	Formatter formatter.Formatter
	// ColorMode decides whether style tags become ANSI sequences (default: auto)
	ColorMode outputstyle.ColorMode
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewLineFormatter(formatter.Config{})
	}

	return &ConsoleHandler{
		writer:    cfg.Writer,
		formatter: cfg.Formatter,
		decorated: cfg.ColorMode.Decorated(cfg.Writer),
		stats:     NewStats(),
	}
}

// Handle formats, renders and writes a log record. Undecorated output
// also loses any ANSI sequences the formatter produced.
func (h *ConsoleHandler) Handle(record *core.Record) error {
	line := h.formatter.Format(record)
	if h.decorated {
		line = outputstyle.Render(line, true)
	} else {
		line = outputstyle.Strip(line)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		h.stats.IncrementFailed(record.Level)
		return ErrClosed
	}
	if _, err := io.WriteString(h.writer, line); err != nil {
		h.stats.IncrementFailed(record.Level)
		return err
	}
	h.stats.IncrementProcessed(record.Level)
	return nil
}

// Decorated reports whether the handler writes ANSI sequences.
func (h *ConsoleHandler) Decorated() bool {
	return h.decorated
}

// Stats returns the live counters of the handler
func (h *ConsoleHandler) Stats() *Stats {
	return h.stats
}

// Close stops the handler. The writer is not closed.
func (h *ConsoleHandler) Close() error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	return nil
}
