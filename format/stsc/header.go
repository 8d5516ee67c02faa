package stsc

import (
	"fmt"
	"io"

	"github.com/joshuapare/neptkit/cursor"
	"github.com/joshuapare/neptkit/item"
)

// HeaderItem is the STSC header with its optional blocks.
type HeaderItem struct {
	item.Base
	entryPoint *item.Label
	flags      uint32
	extra1     [extra1Size]byte
	extra2     [extra2Fields]uint16
	extra4     uint16
}

func (h *HeaderItem) Size() int    { return HeaderSize(h.flags) }
func (h *HeaderItem) Kind() string { return "stsc.header" }

// EntryPoint returns the label of the first instruction.
func (h *HeaderItem) EntryPoint() *item.Label { return h.entryPoint }

// Flags returns the header flags.
func (h *HeaderItem) Flags() uint32 { return h.flags }

func (h *HeaderItem) Dump(s cursor.Sink) error {
	if _, err := s.Write(Magic); err != nil {
		return err
	}
	if err := s.WriteU32(uint32(h.ToFilePos(h.entryPoint.Ptr()))); err != nil {
		return err
	}
	if err := s.WriteU32(h.flags); err != nil {
		return err
	}
	if h.flags&FlagExtra1 != 0 {
		if _, err := s.Write(h.extra1[:]); err != nil {
			return err
		}
	}
	if h.flags&FlagExtra2 != 0 {
		for _, v := range h.extra2 {
			if err := s.WriteU16(v); err != nil {
				return err
			}
		}
	}
	if h.flags&FlagExtra4 != 0 {
		return s.WriteU16(h.extra4)
	}
	return nil
}

func (h *HeaderItem) Inspect(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "stsc_header(%s, %d", h.entryPoint, h.flags); err != nil {
		return err
	}
	if h.flags&FlagExtra1 != 0 {
		if _, err := fmt.Fprintf(w, ", %x", h.extra1[:]); err != nil {
			return err
		}
	}
	if h.flags&FlagExtra2 != 0 {
		for _, v := range h.extra2 {
			if _, err := fmt.Fprintf(w, ", %d", v); err != nil {
				return err
			}
		}
	}
	if h.flags&FlagExtra4 != 0 {
		if _, err := fmt.Fprintf(w, ", %d", h.extra4); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ")\n")
	return err
}

func (h *HeaderItem) Dispose() { h.entryPoint = nil }

// Validate re-checks the entry point against the file being written.
func (h *HeaderItem) Validate(fileSize int) error {
	v := item.NewValidator("Stsc::Header", h.ToFilePos(item.Pointer{Item: h}))
	entry := h.ToFilePos(h.entryPoint.Ptr())
	v.Check("entry_point", entry < fileSize-1, fmt.Sprintf("0x%x", entry))
	v.Check("entry_point", entry >= HeaderSize(h.flags), fmt.Sprintf("0x%x", entry))
	return v.Err()
}

func parseHeader(ctx *item.Context, src *cursor.Source) (*HeaderItem, error) {
	start := src.Tell()
	magic, err := src.Read(len(Magic))
	if err != nil {
		return nil, err
	}
	v := item.NewValidator("Stsc::Header", start)
	v.Magic("magic", magic, string(Magic))
	if err := v.Err(); err != nil {
		return nil, err
	}
	entry, err := src.ReadU32()
	if err != nil {
		return nil, err
	}
	h := &HeaderItem{}
	if h.flags, err = src.ReadU32(); err != nil {
		return nil, err
	}

	v.Check("entry_point", int(entry) < ctx.Size()-1, fmt.Sprintf("0x%x", entry))
	v.Check("flags", h.flags&^flagsMask == 0, fmt.Sprintf("0x%x", h.flags))
	v.Check("entry_point", int(entry) >= HeaderSize(h.flags), fmt.Sprintf("0x%x", entry))
	if err := v.Err(); err != nil {
		return nil, err
	}

	if h.flags&FlagExtra1 != 0 {
		b, err := src.Read(extra1Size)
		if err != nil {
			return nil, err
		}
		copy(h.extra1[:], b)
	}
	if h.flags&FlagExtra2 != 0 {
		for i := range h.extra2 {
			if h.extra2[i], err = src.ReadU16(); err != nil {
				return nil, err
			}
		}
	}
	if h.flags&FlagExtra4 != 0 {
		if h.extra4, err = src.ReadU16(); err != nil {
			return nil, err
		}
	}

	if h.entryPoint, err = ctx.CreateLabelFallback("entry_point", int(entry)); err != nil {
		return nil, err
	}
	return h, nil
}
