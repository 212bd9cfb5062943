package benchmark

import (
	"github.com/Philipp01105/consoleline/core"
	"github.com/Philipp01105/consoleline/formatter"
	"github.com/Philipp01105/consoleline/handler"
)

// formatOnlyHandler formats records and drops the result, so benchmarks
// measure formatting without any writer.
type formatOnlyHandler struct {
	f formatter.Formatter
	n int
}

func newFormatOnlyHandler(f formatter.Formatter) handler.Handler {
	return &formatOnlyHandler{f: f}
}

func (h *formatOnlyHandler) Handle(r *core.Record) error {
	h.n += len(h.f.Format(r))
	return nil
}

func (h *formatOnlyHandler) Close() error {
	return nil
}
