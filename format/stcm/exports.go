package stcm

import (
	"fmt"
	"io"

	"github.com/joshuapare/neptkit/cursor"
	"github.com/joshuapare/neptkit/internal/buf"
	"github.com/joshuapare/neptkit/item"
)

// ExportEntry is one exported symbol.
type ExportEntry struct {
	Type  ExportType
	name  [ExportNameSize]byte
	Label *item.Label
}

// Name returns the export name up to its first NUL.
func (e *ExportEntry) Name() string { return buf.FixedString(e.name[:], 0, ExportNameSize) }

// SetName replaces the export name. Names longer than the field are
// rejected.
func (e *ExportEntry) SetName(name string) error {
	if len(name) >= ExportNameSize {
		return fmt.Errorf("stcm: export name %q longer than %d bytes", name, ExportNameSize-1)
	}
	buf.PutFixedString(e.name[:], 0, ExportNameSize, name)
	return nil
}

// ExportsItem is the export table.
type ExportsItem struct {
	item.Base
	entries []ExportEntry
}

func (x *ExportsItem) Size() int    { return len(x.entries) * ExportEntrySize }
func (x *ExportsItem) Kind() string { return "stcm.exports" }

// Entries returns the table entries. Changes to the returned entries are
// written back by Dump.
func (x *ExportsItem) Entries() []*ExportEntry {
	out := make([]*ExportEntry, len(x.entries))
	for i := range x.entries {
		out[i] = &x.entries[i]
	}
	return out
}

// Lookup returns the export called name.
func (x *ExportsItem) Lookup(name string) (*ExportEntry, bool) {
	for i := range x.entries {
		if x.entries[i].Name() == name {
			return &x.entries[i], true
		}
	}
	return nil, false
}

func (x *ExportsItem) Dump(s cursor.Sink) error {
	for i := range x.entries {
		e := &x.entries[i]
		if err := s.WriteU32(uint32(e.Type)); err != nil {
			return err
		}
		if _, err := s.Write(e.name[:]); err != nil {
			return err
		}
		if err := s.WriteU32(uint32(x.ToFilePos(e.Label.Ptr()))); err != nil {
			return err
		}
	}
	return nil
}

func (x *ExportsItem) Inspect(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "exports[%d](\n", len(x.entries)); err != nil {
		return err
	}
	for i := range x.entries {
		e := &x.entries[i]
		if _, err := fmt.Fprintf(w, "  (%s, %q, %s),\n", e.Type, e.Name(), e.Label); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ")\n")
	return err
}

func (x *ExportsItem) Dispose() { x.entries = nil }

func (x *ExportsItem) Validate(fileSize int) error {
	start := x.ToFilePos(item.Pointer{Item: x})
	for i := range x.entries {
		e := &x.entries[i]
		v := item.NewValidator("Stcm::Exports::Entry", start+i*ExportEntrySize)
		v.OneOf("type", uint32(e.Type), uint32(ExportCode), uint32(ExportData))
		v.Max("offset", x.ToFilePos(e.Label.Ptr()), fileSize)
		if err := v.Err(); err != nil {
			return err
		}
	}
	return nil
}

func exportsCtor(count uint32) item.Ctor[*ExportsItem] {
	return func(ctx *item.Context, src *cursor.Source) (*ExportsItem, error) {
		if err := src.CheckRemaining(int(count) * ExportEntrySize); err != nil {
			return nil, err
		}
		x := &ExportsItem{entries: make([]ExportEntry, count)}
		offsets := make([]uint32, count)
		for i := range x.entries {
			start := src.Tell()
			raw, err := src.Read(ExportEntrySize)
			if err != nil {
				return nil, err
			}
			e := &x.entries[i]
			e.Type = ExportType(buf.U32(raw, 0))
			copy(e.name[:], raw[4:4+ExportNameSize])
			offsets[i] = buf.U32(raw, 0x24)

			v := item.NewValidator("Stcm::Exports::Entry", start)
			v.OneOf("type", uint32(e.Type), uint32(ExportCode), uint32(ExportData))
			v.Max("offset", int(offsets[i]), ctx.Size())
			if err := v.Err(); err != nil {
				return nil, err
			}
		}

		// labels only once every entry is known good
		for i := range x.entries {
			e := &x.entries[i]
			lbl, err := ctx.CreateLabelFallback(e.Name(), int(offsets[i]))
			if err != nil {
				return nil, err
			}
			e.Label = lbl
		}
		return x, nil
	}
}
