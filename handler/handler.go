package handler

import (
	"github.com/Philipp01105/consoleline/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log record
	Handle(record *core.Record) error

	// Close closes the handler and releases resources
	Close() error
}
