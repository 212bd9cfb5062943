package formatter

import (
	"bytes"
	"sync"

	"github.com/Philipp01105/consoleline/core"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format renders a single record
	Format(r *core.Record) string
	// FormatBatch renders records independently, preserving order
	FormatBatch(rs []core.Record) []string
}

// bufferPool is a pool of bytes.Buffer used as dump scratch space
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
