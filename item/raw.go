package item

import (
	"fmt"
	"io"

	"github.com/joshuapare/neptkit/cursor"
)

// RawItem is a region nobody has recognized yet. Its bytes alias the
// Context's input buffer and are written back unchanged.
type RawItem struct {
	Base
	data []byte
}

func newRaw(data []byte) *RawItem { return &RawItem{data: data} }

func (r *RawItem) Size() int { return len(r.data) }

func (r *RawItem) Kind() string { return "raw" }

// Bytes returns the region's bytes. They must not be modified.
func (r *RawItem) Bytes() []byte { return r.data }

// Source returns a cursor over the region starting off bytes in.
func (r *RawItem) Source(off int) (*cursor.Source, error) {
	return cursor.NewSource(r.data, r.key, r.ctx.Size()).Sub(off, len(r.data)-off)
}

func (r *RawItem) Dump(s cursor.Sink) error {
	_, err := s.Write(r.data)
	return err
}

const rawPreviewBytes = 16

func (r *RawItem) Inspect(w io.Writer) error {
	n := min(len(r.data), rawPreviewBytes)
	suffix := ""
	if n < len(r.data) {
		suffix = "..."
	}
	_, err := fmt.Fprintf(w, "raw(0x%x bytes: % x%s)\n", len(r.data), r.data[:n], suffix)
	return err
}

// EOFItem is the zero-sized sentinel that always ends a Context. Labels
// pointing one past the last byte of the file are anchored here.
type EOFItem struct {
	Base
}

func (e *EOFItem) Size() int { return 0 }

func (e *EOFItem) Kind() string { return "eof" }

func (e *EOFItem) Dump(cursor.Sink) error { return nil }

func (e *EOFItem) Inspect(w io.Writer) error {
	_, err := io.WriteString(w, "eof()\n")
	return err
}
