package handler

import (
	"go.uber.org/multierr"

	"github.com/Philipp01105/consoleline/core"
)

// MultiHandler sends log records to multiple handlers
type MultiHandler struct {
	handlers []Handler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Handle sends the record to every handler. A failing handler does not
// stop the others; all errors are combined.
func (h *MultiHandler) Handle(record *core.Record) error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Handle(record))
	}
	return err
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Close())
	}
	return err
}
