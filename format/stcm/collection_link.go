package stcm

import (
	"fmt"
	"io"

	"github.com/joshuapare/neptkit/cursor"
	"github.com/joshuapare/neptkit/internal/buf"
	"github.com/joshuapare/neptkit/item"
)

// CollectionLinkHeaderItem points at the collection-link table.
type CollectionLinkHeaderItem struct {
	item.Base
	data  *item.Label
	count uint32
}

func (h *CollectionLinkHeaderItem) Size() int    { return CollectionLinkHeaderSize }
func (h *CollectionLinkHeaderItem) Kind() string { return "stcm.collection_link_header" }

// DataLabel returns the label of the entry table.
func (h *CollectionLinkHeaderItem) DataLabel() *item.Label { return h.data }

// Table returns the entry table. It is nil for an empty table, whose label
// is left wherever the header pointed, usually the end of file.
func (h *CollectionLinkHeaderItem) Table() *CollectionLinkItem {
	t, _ := item.At0[*CollectionLinkItem](h.data.Ptr())
	return t
}

func (h *CollectionLinkHeaderItem) countNow() uint32 {
	if t := h.Table(); t != nil {
		return uint32(len(t.entries))
	}
	return h.count
}

func (h *CollectionLinkHeaderItem) Dump(s cursor.Sink) error {
	if err := s.WriteU32(0); err != nil {
		return err
	}
	if err := s.WriteU32(uint32(h.ToFilePos(h.data.Ptr()))); err != nil {
		return err
	}
	if err := s.WriteU32(h.countNow()); err != nil {
		return err
	}
	return s.Pad(CollectionLinkHeaderSize - 12)
}

func (h *CollectionLinkHeaderItem) Inspect(w io.Writer) error {
	_, err := fmt.Fprintf(w, "collection_link_header(%s, %d)\n", h.data, h.countNow())
	return err
}

func (h *CollectionLinkHeaderItem) Dispose() { h.data = nil }

func (h *CollectionLinkHeaderItem) Validate(fileSize int) error {
	v := item.NewValidator("Stcm::CollectionLinkHeader", h.ToFilePos(item.Pointer{Item: h}))
	data := h.ToFilePos(h.data.Ptr())
	v.Max("offset", data, fileSize)
	v.Span("count", data, int(h.countNow()), CollectionLinkEntrySize, fileSize)
	return v.Err()
}

func parseCollectionLinkHeader(ctx *item.Context, src *cursor.Source) (*CollectionLinkHeaderItem, error) {
	start := src.Tell()
	raw, err := src.Read(CollectionLinkHeaderSize)
	if err != nil {
		return nil, err
	}
	offset := buf.U32(raw, 0x04)
	h := &CollectionLinkHeaderItem{count: buf.U32(raw, 0x08)}

	v := item.NewValidator("Stcm::CollectionLinkHeader", start)
	v.Zero("field_00", buf.U32(raw, 0x00))
	v.Max("offset", int(offset), ctx.Size())
	v.Span("count", int(offset), int(h.count), CollectionLinkEntrySize, ctx.Size())
	for off := 0x0c; off < CollectionLinkHeaderSize; off += 4 {
		v.Zero(fmt.Sprintf("field_%02x", off), buf.U32(raw, off))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if h.data, err = ctx.CreateLabelFallback("collection_link", int(offset)); err != nil {
		return nil, err
	}
	return h, nil
}

// LinkEntry pairs two names.
type LinkEntry struct {
	Name0 *item.Label
	Name1 *item.Label
}

// CollectionLinkItem is the collection-link entry table.
type CollectionLinkItem struct {
	item.Base
	entries []LinkEntry
}

func (c *CollectionLinkItem) Size() int    { return len(c.entries) * CollectionLinkEntrySize }
func (c *CollectionLinkItem) Kind() string { return "stcm.collection_link" }

// Entries returns the table entries. Changes to the returned entries are
// written back by Dump.
func (c *CollectionLinkItem) Entries() []*LinkEntry {
	out := make([]*LinkEntry, len(c.entries))
	for i := range c.entries {
		out[i] = &c.entries[i]
	}
	return out
}

func (c *CollectionLinkItem) Dump(s cursor.Sink) error {
	for _, e := range c.entries {
		if err := s.WriteU32(uint32(c.ToFilePos(e.Name0.Ptr()))); err != nil {
			return err
		}
		if err := s.WriteU32(uint32(c.ToFilePos(e.Name1.Ptr()))); err != nil {
			return err
		}
		if err := s.Pad(CollectionLinkEntrySize - 8); err != nil {
			return err
		}
	}
	return nil
}

func (c *CollectionLinkItem) Inspect(w io.Writer) error {
	for _, e := range c.entries {
		if _, err := fmt.Fprintf(w, "collection_link(%s, %s)\n", e.Name0, e.Name1); err != nil {
			return err
		}
	}
	return nil
}

func (c *CollectionLinkItem) Dispose() { c.entries = nil }

func (c *CollectionLinkItem) Validate(fileSize int) error {
	start := c.ToFilePos(item.Pointer{Item: c})
	for i, e := range c.entries {
		v := item.NewValidator("Stcm::CollectionLink::Entry", start+i*CollectionLinkEntrySize)
		v.Max("name_0", c.ToFilePos(e.Name0.Ptr()), fileSize)
		v.Max("name_1", c.ToFilePos(e.Name1.Ptr()), fileSize)
		if err := v.Err(); err != nil {
			return err
		}
	}
	return nil
}

func collectionLinkCtor(count uint32) item.Ctor[*CollectionLinkItem] {
	return func(ctx *item.Context, src *cursor.Source) (*CollectionLinkItem, error) {
		if err := src.CheckRemaining(int(count) * CollectionLinkEntrySize); err != nil {
			return nil, err
		}
		names := make([][2]uint32, count)
		for i := range names {
			start := src.Tell()
			raw, err := src.Read(CollectionLinkEntrySize)
			if err != nil {
				return nil, err
			}
			names[i] = [2]uint32{buf.U32(raw, 0x00), buf.U32(raw, 0x04)}

			v := item.NewValidator("Stcm::CollectionLink::Entry", start)
			v.Max("name_0", int(names[i][0]), ctx.Size())
			v.Max("name_1", int(names[i][1]), ctx.Size())
			v.Zero("ptr", buf.U32(raw, 0x08))
			for off := 0x0c; off < CollectionLinkEntrySize; off += 4 {
				v.Zero(fmt.Sprintf("field_%02x", off), buf.U32(raw, off))
			}
			if err := v.Err(); err != nil {
				return nil, err
			}
		}

		c := &CollectionLinkItem{entries: make([]LinkEntry, count)}
		for i, n := range names {
			l0, err := ctx.GetLabelTo(int(n[0]))
			if err != nil {
				return nil, err
			}
			l1, err := ctx.GetLabelTo(int(n[1]))
			if err != nil {
				return nil, err
			}
			c.entries[i] = LinkEntry{Name0: l0, Name1: l1}
		}
		return c, nil
	}
}
