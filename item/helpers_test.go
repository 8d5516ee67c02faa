package item

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/neptkit/cursor"
)

// -----------------------------------------------------------------------------
// test records
// -----------------------------------------------------------------------------

// refItem is a 4-byte little-endian file offset, held as a label.
type refItem struct {
	Base
	target   *Label
	disposed bool
}

func (r *refItem) Size() int    { return 4 }
func (r *refItem) Kind() string { return "test.ref" }

func (r *refItem) Dump(s cursor.Sink) error {
	return s.WriteU32(uint32(r.ToFilePos(r.target.Ptr())))
}

func (r *refItem) Inspect(w io.Writer) error {
	_, err := fmt.Fprintf(w, "ref(@%s)\n", r.target.Name())
	return err
}

func (r *refItem) Dispose() {
	r.target = nil
	r.disposed = true
}

func parseRef(ctx *Context, src *cursor.Source) (*refItem, error) {
	start := src.Tell()
	off, err := src.ReadU32()
	if err != nil {
		return nil, err
	}
	v := NewValidator("test.ref", start)
	v.Max("offset", int(off), src.Size())
	if err := v.Err(); err != nil {
		return nil, err
	}
	lbl, err := ctx.GetLabelTo(int(off))
	if err != nil {
		return nil, err
	}
	return &refItem{target: lbl}, nil
}

// blobItem owns n opaque bytes whose contents may be edited.
type blobItem struct {
	Base
	data []byte
}

func (b *blobItem) Size() int    { return len(b.data) }
func (b *blobItem) Kind() string { return "test.blob" }

func (b *blobItem) Dump(s cursor.Sink) error {
	_, err := s.Write(b.data)
	return err
}

func (b *blobItem) Inspect(w io.Writer) error {
	_, err := fmt.Fprintf(w, "blob(%d)\n", len(b.data))
	return err
}

func blobCtor(n int) Ctor[*blobItem] {
	return func(_ *Context, src *cursor.Source) (*blobItem, error) {
		data, err := src.Read(n)
		if err != nil {
			return nil, err
		}
		return &blobItem{data: append([]byte(nil), data...)}, nil
	}
}

// -----------------------------------------------------------------------------
// helpers
// -----------------------------------------------------------------------------

func seq(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

func kinds(ctx *Context) []string {
	var out []string
	for _, it := range ctx.Items() {
		out = append(out, fmt.Sprintf("%s@%d+%d", it.Kind(), it.Key(), it.Size()))
	}
	return out
}

func requireRoundTrip(t *testing.T, ctx *Context, want []byte) {
	t.Helper()
	require.NoError(t, ctx.CheckPartition())
	got, err := ctx.Bytes()
	require.NoError(t, err)
	require.Equal(t, want, got)
}
