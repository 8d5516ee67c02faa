// Package cursor implements the wire-level primitives used by every record:
// a bounds-checked forward reader (Source) and a forward writer (Sink).
//
// All multi-byte integers are little-endian. A Source never seeks
// backwards; random access is done by taking a fresh cursor over a
// sub-range with Sub. Sinks report their absolute write offset through
// Tell, which is what lets labels resolve to file positions lazily while a
// document is being written.
//
// Two Sink backends satisfy the same contract:
//
//	ms := cursor.NewMemorySink(0)
//	_ = ctx.Dump(ms)
//	out := ms.Bytes()
//
//	fs, err := cursor.NewFileSink("out.bin")
//	if err != nil { ... }
//	defer fs.Close()
//	_ = ctx.Dump(fs)
//	err = fs.Flush() // durable + atomically renamed into place
package cursor
