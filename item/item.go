package item

import (
	"io"
	"sort"

	"github.com/joshuapare/neptkit/cursor"
)

// Item is one contiguous byte range of a file.
//
// Records implement Size, Dump, Inspect and Kind and embed Base for the
// rest. Dump must write exactly Size bytes.
type Item interface {
	// Key is the item's starting file offset when it was created. Keys are
	// unique within a Context and order its items.
	Key() int
	Context() *Context
	Size() int
	Kind() string
	Dump(s cursor.Sink) error
	Inspect(w io.Writer) error
	// Dispose releases references to other items before the Context is
	// torn down.
	Dispose()
	// Labels returns the labels anchored inside the item, by offset.
	Labels() []*Label

	base() *Base
}

// Base carries the bookkeeping every Item needs. Embed it by value.
type Base struct {
	ctx    *Context
	key    int
	labels []*Label // sorted by pointer offset
}

func (b *Base) base() *Base { return b }

func (b *Base) Key() int { return b.key }

// Context returns the owning Context, or nil for a detached item.
func (b *Base) Context() *Context { return b.ctx }

// Dispose is the default teardown; records holding labels override it.
func (b *Base) Dispose() {}

// Labels returns the labels anchored in this item, ordered by offset.
func (b *Base) Labels() []*Label {
	out := make([]*Label, len(b.labels))
	copy(out, b.labels)
	return out
}

// LabelsAt returns the labels anchored exactly at off.
func (b *Base) LabelsAt(off int) []*Label {
	i := sort.Search(len(b.labels), func(i int) bool { return b.labels[i].ptr.Offset >= off })
	j := i
	for j < len(b.labels) && b.labels[j].ptr.Offset == off {
		j++
	}
	return b.labels[i:j:j]
}

// ToFilePos resolves p through the owning Context.
func (b *Base) ToFilePos(p Pointer) int {
	return b.ctx.ToFilePos(p)
}

func (b *Base) attach(ctx *Context, key int) {
	b.ctx = ctx
	b.key = key
}

func (b *Base) addLabel(l *Label) {
	i := sort.Search(len(b.labels), func(i int) bool { return b.labels[i].ptr.Offset > l.ptr.Offset })
	b.labels = append(b.labels, nil)
	copy(b.labels[i+1:], b.labels[i:])
	b.labels[i] = l
}

func (b *Base) removeLabel(l *Label) {
	for i, x := range b.labels {
		if x == l {
			b.labels = append(b.labels[:i], b.labels[i+1:]...)
			return
		}
	}
}
