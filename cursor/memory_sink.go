package cursor

import "bytes"

// MemorySink accumulates written bytes in memory.
type MemorySink struct {
	core
	b *bytes.Buffer
}

// NewMemorySink returns an empty sink with room for capacity bytes.
func NewMemorySink(capacity int) *MemorySink {
	b := bytes.NewBuffer(make([]byte, 0, capacity))
	return &MemorySink{core: core{w: b}, b: b}
}

// Bytes returns everything written so far. The slice is valid until the
// next write.
func (m *MemorySink) Bytes() []byte { return m.b.Bytes() }

// Flush is a no-op; memory sinks hold no buffered state.
func (m *MemorySink) Flush() error { return nil }

// Reset discards the written bytes and rewinds Tell to zero.
func (m *MemorySink) Reset() {
	m.b.Reset()
	m.pos = 0
}
