package stcm

import (
	"fmt"
	"io"

	"github.com/joshuapare/neptkit/cursor"
	"github.com/joshuapare/neptkit/internal/buf"
	"github.com/joshuapare/neptkit/item"
)

// HeaderItem is the STCM file header.
type HeaderItem struct {
	item.Base
	msg            [MsgSize]byte
	exports        *item.Label
	exportCount    uint32
	collectionLink *item.Label
}

func (h *HeaderItem) Size() int    { return HeaderSize }
func (h *HeaderItem) Kind() string { return "stcm.header" }

// Msg returns the header message up to its first NUL.
func (h *HeaderItem) Msg() string { return buf.FixedString(h.msg[:], 0, MsgSize) }

// ExportsLabel returns the label of the export table.
func (h *HeaderItem) ExportsLabel() *item.Label { return h.exports }

// CollectionLinkLabel returns the label of the collection-link header.
func (h *HeaderItem) CollectionLinkLabel() *item.Label { return h.collectionLink }

// Exports returns the export table, or nil when the file has no exports.
func (h *HeaderItem) Exports() *ExportsItem {
	e, _ := item.At0[*ExportsItem](h.exports.Ptr())
	return e
}

// CollectionLink returns the collection-link header once parsed.
func (h *HeaderItem) CollectionLink() *CollectionLinkHeaderItem {
	c, _ := item.At0[*CollectionLinkHeaderItem](h.collectionLink.Ptr())
	return c
}

func (h *HeaderItem) exportCountNow() uint32 {
	if e := h.Exports(); e != nil {
		return uint32(len(e.entries))
	}
	return h.exportCount
}

func (h *HeaderItem) Dump(s cursor.Sink) error {
	if _, err := s.Write(h.msg[:]); err != nil {
		return err
	}
	fields := []uint32{
		uint32(h.ToFilePos(h.exports.Ptr())),
		h.exportCountNow(),
		0,
		uint32(h.ToFilePos(h.collectionLink.Ptr())),
	}
	for _, v := range fields {
		if err := s.WriteU32(v); err != nil {
			return err
		}
	}
	return nil
}

func (h *HeaderItem) Inspect(w io.Writer) error {
	_, err := fmt.Fprintf(w, "stcm_header(%q, %s, %d, %s)\n",
		h.Msg(), h.exports, h.exportCountNow(), h.collectionLink)
	return err
}

func (h *HeaderItem) Dispose() {
	h.exports = nil
	h.collectionLink = nil
}

func (h *HeaderItem) Validate(fileSize int) error {
	v := item.NewValidator("Stcm::Header", h.ToFilePos(item.Pointer{Item: h}))
	exports := h.ToFilePos(h.exports.Ptr())
	v.Max("export_offset", exports, fileSize)
	v.Span("export_count", exports, int(h.exportCountNow()), ExportEntrySize, fileSize)
	v.Max("collection_link_offset", h.ToFilePos(h.collectionLink.Ptr()), fileSize)
	return v.Err()
}

func parseHeader(ctx *item.Context, src *cursor.Source) (*HeaderItem, error) {
	start := src.Tell()
	magic, err := src.Read(len(Magic))
	if err != nil {
		return nil, err
	}
	v := item.NewValidator("Stcm::Header", start)
	v.Magic("msg", magic, string(Magic))
	if err := v.Err(); err != nil {
		return nil, err
	}
	rest, err := src.Read(HeaderSize - len(Magic))
	if err != nil {
		return nil, err
	}
	raw := append(append(make([]byte, 0, HeaderSize), magic...), rest...)

	h := &HeaderItem{exportCount: buf.U32(raw, 0x24)}
	copy(h.msg[:], raw[:MsgSize])
	exportOffset := buf.U32(raw, 0x20)
	field28 := buf.U32(raw, 0x28)
	linkOffset := buf.U32(raw, 0x2c)

	v.Max("export_offset", int(exportOffset), ctx.Size())
	v.Span("export_count", int(exportOffset), int(h.exportCount), ExportEntrySize, ctx.Size())
	v.Zero("field_28", field28)
	v.Max("collection_link_offset", int(linkOffset), ctx.Size())
	if err := v.Err(); err != nil {
		return nil, err
	}

	if h.exports, err = ctx.CreateLabelFallback("exports", int(exportOffset)); err != nil {
		return nil, err
	}
	if h.collectionLink, err = ctx.CreateLabelFallback("collection_link_hdr", int(linkOffset)); err != nil {
		return nil, err
	}
	return h, nil
}
