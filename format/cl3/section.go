package cl3

import (
	"fmt"
	"io"

	"github.com/joshuapare/neptkit/cursor"
	"github.com/joshuapare/neptkit/internal/buf"
	"github.com/joshuapare/neptkit/item"
)

// SectionItem is one section descriptor.
type SectionItem struct {
	item.Base
	name     [NameSize]byte
	count    uint32
	dataSize uint32
	data     *item.Label
}

func (s *SectionItem) Size() int    { return SectionSize }
func (s *SectionItem) Kind() string { return "cl3.section" }

// Name returns the section name up to its first NUL.
func (s *SectionItem) Name() string { return buf.FixedString(s.name[:], 0, NameSize) }

// Count returns the descriptor's entry count field.
func (s *SectionItem) Count() uint32 { return s.count }

// DataLabel returns the label of the section's payload.
func (s *SectionItem) DataLabel() *item.Label { return s.data }

// Data returns the payload record, or nil for an empty section. An empty
// section may point at another section's payload; it stays empty.
func (s *SectionItem) Data() *DataItem {
	if s.dataSize == 0 {
		return nil
	}
	d, _ := item.At0[*DataItem](s.data.Ptr())
	return d
}

// DataSize returns the payload size that will be written.
func (s *SectionItem) DataSize() int {
	if d := s.Data(); d != nil {
		return d.Size()
	}
	return int(s.dataSize)
}

func (s *SectionItem) Dump(sink cursor.Sink) error {
	if _, err := sink.Write(s.name[:]); err != nil {
		return err
	}
	for _, v := range []uint32{s.count, uint32(s.DataSize()), uint32(s.ToFilePos(s.data.Ptr()))} {
		if err := sink.WriteU32(v); err != nil {
			return err
		}
	}
	return sink.Pad(sectionReserved * 4)
}

func (s *SectionItem) Inspect(w io.Writer) error {
	_, err := fmt.Fprintf(w, "cl3_section(%q, %d, %s, 0x%x)\n", s.Name(), s.count, s.data, s.DataSize())
	return err
}

func (s *SectionItem) Dispose() { s.data = nil }

func (s *SectionItem) Validate(fileSize int) error {
	v := item.NewValidator("Cl3::Section", s.ToFilePos(item.Pointer{Item: s}))
	data := s.ToFilePos(s.data.Ptr())
	v.Max("data_offset", data, fileSize)
	v.Span("data_size", data, s.DataSize(), 1, fileSize)
	return v.Err()
}

func parseSection(ctx *item.Context, src *cursor.Source) (*SectionItem, error) {
	start := src.Tell()
	raw, err := src.Read(SectionSize)
	if err != nil {
		return nil, err
	}
	s := &SectionItem{
		count:    buf.U32(raw, 0x20),
		dataSize: buf.U32(raw, 0x24),
	}
	copy(s.name[:], raw[:NameSize])
	dataOffset := buf.U32(raw, 0x28)

	v := item.NewValidator("Cl3::Section", start)
	v.Max("data_offset", int(dataOffset), ctx.Size())
	v.Span("data_size", int(dataOffset), int(s.dataSize), 1, ctx.Size())
	for i := range sectionReserved {
		off := 0x2c + 4*i
		v.Zero(fmt.Sprintf("field_%x", off), buf.U32(raw, off))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if s.data, err = ctx.CreateLabelFallback("section_"+s.Name(), int(dataOffset)); err != nil {
		return nil, err
	}
	return s, nil
}

// DataItem holds a section's payload. The bytes are opaque to this package.
type DataItem struct {
	item.Base
	data []byte
}

func (d *DataItem) Size() int    { return len(d.data) }
func (d *DataItem) Kind() string { return "cl3.data" }

// Bytes returns the payload. The slice may alias the input file and must
// not be modified.
func (d *DataItem) Bytes() []byte { return d.data }

// SetBytes replaces the payload. Offsets of everything after the section
// shift when the size changes.
func (d *DataItem) SetBytes(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("cl3: section payload must not be empty")
	}
	d.data = b
	return nil
}

func (d *DataItem) Dump(s cursor.Sink) error {
	_, err := s.Write(d.data)
	return err
}

func (d *DataItem) Inspect(w io.Writer) error {
	_, err := fmt.Fprintf(w, "cl3_data(0x%x bytes)\n", len(d.data))
	return err
}

func dataCtor(size int) item.Ctor[*DataItem] {
	return func(_ *item.Context, src *cursor.Source) (*DataItem, error) {
		b, err := src.Read(size)
		if err != nil {
			return nil, err
		}
		return &DataItem{data: b}, nil
	}
}
