package item

import (
	"fmt"
	"slices"

	"github.com/joshuapare/neptkit/cursor"
	"github.com/joshuapare/neptkit/errs"
)

// Ctor decodes a record from src, which starts at the split point and
// extends to the end of the enclosing raw region. It must validate what it
// reads and may register labels on ctx, but must not split.
type Ctor[T Item] func(ctx *Context, src *cursor.Source) (T, error)

// SplitCreate carves a record of type T out of the raw item ptr points
// into. Bytes before and after the record stay raw, and labels anchored in
// the old raw item move to whichever new item covers them.
//
// If ptr already addresses the first byte of a T the existing record is
// returned, so a region reached through two references is parsed once.
// Any other typed target fails with errs.ErrOverlap. On error the item
// list is left as it was.
//
// ptr must be current; take it from Label.Ptr or Context.Pointer rather
// than holding one across splits.
func SplitCreate[T Item](ptr Pointer, ctor Ctor[T]) (T, error) {
	var zero T
	if existing, ok := At0[T](ptr); ok {
		return existing, nil
	}
	raw, ok := ptr.Item.(*RawItem)
	if !ok {
		return zero, &errs.DecodeError{
			Record: fmt.Sprintf("%T", zero),
			Offset: int64(ptr.Item.Key() + ptr.Offset),
			Msg:    fmt.Sprintf("target is inside %s item at key 0x%x", ptr.Item.Kind(), ptr.Item.Key()),
			Err:    errs.ErrOverlap,
		}
	}
	ctx := raw.ctx
	if ctx == nil || ptr.Offset < 0 || ptr.Offset >= raw.Size() {
		panic(fmt.Sprintf("item: split pointer %v outside raw item of size 0x%x", ptr, raw.Size()))
	}

	src := cursor.NewSource(raw.data[ptr.Offset:], raw.key+ptr.Offset, ctx.Size())
	size := raw.Size()
	rec, err := ctor(ctx, src)
	if err != nil {
		return zero, err
	}
	if raw.ctx != ctx || raw.Size() != size {
		panic("item: constructor modified the raw item it was splitting")
	}
	if n := rec.Size(); n <= 0 || n > size-ptr.Offset {
		return zero, &errs.DecodeError{
			Record: rec.Kind(),
			Field:  "size",
			Offset: int64(raw.key + ptr.Offset),
			Value:  n,
			Msg:    fmt.Sprintf("record does not fit in raw region of 0x%x bytes", size-ptr.Offset),
			Err:    errs.ErrTruncated,
		}
	}
	ctx.split(raw, ptr.Offset, rec)
	return rec, nil
}

// SplitCreateAt is SplitCreate at a parse-time file offset.
func SplitCreateAt[T Item](ctx *Context, off int, ctor Ctor[T]) (T, error) {
	ptr, err := ctx.Pointer(off)
	if err != nil {
		var zero T
		return zero, err
	}
	return SplitCreate(ptr, ctor)
}

func (c *Context) split(raw *RawItem, off int, rec Item) {
	idx := c.indexOf(raw)
	end := off + rec.Size()
	rb := rec.base()
	rb.attach(c, raw.key+off)

	var suffix *RawItem
	if end < raw.Size() {
		suffix = newRaw(raw.data[end:])
		suffix.attach(c, raw.key+end)
	}

	var keep []*Label
	for _, l := range raw.labels {
		switch {
		case l.ptr.Offset < off:
			keep = append(keep, l)
		case l.ptr.Offset < end || suffix == nil:
			l.ptr = Pointer{Item: rec, Offset: l.ptr.Offset - off}
			rb.labels = append(rb.labels, l)
		default:
			l.ptr = Pointer{Item: suffix, Offset: l.ptr.Offset - end}
			suffix.labels = append(suffix.labels, l)
		}
	}

	repl := make([]Item, 0, 3)
	if off > 0 {
		raw.data = raw.data[:off]
		raw.labels = keep
		repl = append(repl, raw)
	} else {
		raw.labels = nil
		raw.ctx = nil
	}
	repl = append(repl, rec)
	if suffix != nil {
		repl = append(repl, suffix)
	}
	c.items = slices.Replace(c.items, idx, idx+1, repl...)

	c.log.Debug("split",
		"kind", rec.Kind(),
		"key", rb.key,
		"size", rec.Size(),
		"prefix", off > 0,
		"suffix", suffix != nil)
}
