package cl3

import (
	"fmt"
	"io"

	"github.com/joshuapare/neptkit/cursor"
	"github.com/joshuapare/neptkit/item"
)

// HeaderItem is the archive header.
type HeaderItem struct {
	item.Base
	sections *item.Label
	count    uint32
}

func (h *HeaderItem) Size() int    { return HeaderSize }
func (h *HeaderItem) Kind() string { return "cl3.header" }

// SectionsLabel returns the label of the section table.
func (h *HeaderItem) SectionsLabel() *item.Label { return h.sections }

// NumSections returns the number of section descriptors.
func (h *HeaderItem) NumSections() int { return int(h.count) }

// Sections returns the descriptors the header points at, in table order.
// It is empty until Parse has split the table.
func (h *HeaderItem) Sections() []*SectionItem {
	ptr := h.sections.Ptr()
	if ptr.Offset != 0 || h.count == 0 {
		return nil
	}
	items := h.Context().Items()
	var out []*SectionItem
	for i, it := range items {
		if it != ptr.Item {
			continue
		}
		for _, next := range items[i:] {
			s, ok := next.(*SectionItem)
			if !ok || len(out) == int(h.count) {
				break
			}
			out = append(out, s)
		}
		break
	}
	return out
}

func (h *HeaderItem) Dump(s cursor.Sink) error {
	if _, err := s.Write(Magic); err != nil {
		return err
	}
	fields := []uint32{0, Field08Value, h.count, uint32(h.ToFilePos(h.sections.Ptr())), 0}
	for _, v := range fields {
		if err := s.WriteU32(v); err != nil {
			return err
		}
	}
	return nil
}

func (h *HeaderItem) Inspect(w io.Writer) error {
	_, err := fmt.Fprintf(w, "cl3_header(%d, %s)\n", h.count, h.sections)
	return err
}

func (h *HeaderItem) Dispose() { h.sections = nil }

func (h *HeaderItem) Validate(fileSize int) error {
	v := item.NewValidator("Cl3::Header", h.ToFilePos(item.Pointer{Item: h}))
	secs := h.ToFilePos(h.sections.Ptr())
	v.Max("secs_offset", secs, fileSize)
	v.Span("num_sections", secs, int(h.count), SectionSize, fileSize)
	return v.Err()
}

func parseHeader(ctx *item.Context, src *cursor.Source) (*HeaderItem, error) {
	start := src.Tell()
	magic, err := src.Read(len(Magic))
	if err != nil {
		return nil, err
	}
	v := item.NewValidator("Cl3::Header", start)
	v.Magic("magic", magic, string(Magic))
	if err := v.Err(); err != nil {
		return nil, err
	}

	var f [5]uint32 // field_04 .. field_14
	for i := range f {
		if f[i], err = src.ReadU32(); err != nil {
			return nil, err
		}
	}
	field04, field08, numSections, secsOffset, field14 := f[0], f[1], f[2], f[3], f[4]

	v.Zero("field_04", field04)
	v.Check("field_08", field08 == Field08Value, field08)
	v.Max("secs_offset", int(secsOffset), ctx.Size())
	v.Span("num_sections", int(secsOffset), int(numSections), SectionSize, ctx.Size())
	v.Zero("field_14", field14)
	if err := v.Err(); err != nil {
		return nil, err
	}

	lbl, err := ctx.CreateLabelFallback("sections", int(secsOffset))
	if err != nil {
		return nil, err
	}
	return &HeaderItem{sections: lbl, count: numSections}, nil
}
