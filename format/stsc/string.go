package stsc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/japanese"

	"github.com/joshuapare/neptkit/cursor"
	"github.com/joshuapare/neptkit/errs"
	"github.com/joshuapare/neptkit/item"
)

// StringItem is a NUL-terminated Shift-JIS string. The raw bytes are kept
// so undecodable strings still round-trip.
type StringItem struct {
	item.Base
	data []byte
}

func (s *StringItem) Size() int    { return len(s.data) + 1 }
func (s *StringItem) Kind() string { return "stsc.string" }

// Raw returns the Shift-JIS bytes without the terminator.
func (s *StringItem) Raw() []byte { return s.data }

// Text returns the string decoded to UTF-8. Bytes that are not valid
// Shift-JIS fail with errs.ErrText instead of being replaced, so the text
// always encodes back to the same bytes.
func (s *StringItem) Text() (string, error) {
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(s.data)
	if err != nil {
		return "", fmt.Errorf("%w: decode string at key 0x%x: %w", errs.ErrText, s.Key(), err)
	}
	back, err := japanese.ShiftJIS.NewEncoder().Bytes(out)
	if err != nil || !bytes.Equal(back, s.data) {
		return "", fmt.Errorf("%w: string at key 0x%x is not valid Shift-JIS: % x", errs.ErrText, s.Key(), s.data)
	}
	return string(out), nil
}

// SetText replaces the string with the Shift-JIS encoding of text.
func (s *StringItem) SetText(text string) error {
	if strings.IndexByte(text, 0) >= 0 {
		return fmt.Errorf("%w: string contains NUL", errs.ErrText)
	}
	out, err := japanese.ShiftJIS.NewEncoder().String(text)
	if err != nil {
		return fmt.Errorf("%w: encode %q: %w", errs.ErrText, text, err)
	}
	s.data = []byte(out)
	return nil
}

func (s *StringItem) Dump(sink cursor.Sink) error {
	if _, err := sink.Write(s.data); err != nil {
		return err
	}
	return sink.WriteU8(0)
}

func (s *StringItem) Inspect(w io.Writer) error {
	text, err := s.Text()
	if err != nil {
		_, err = fmt.Fprintf(w, "string(% x)\n", s.data)
		return err
	}
	_, err = fmt.Fprintf(w, "string(%q)\n", text)
	return err
}

func parseString(_ *item.Context, src *cursor.Source) (*StringItem, error) {
	b, err := src.ReadCString()
	if err != nil {
		return nil, errs.WithRecord(err, "Stsc::String")
	}
	return &StringItem{data: b}, nil
}

// CreateString splits a string out of the raw bytes at ptr. A string
// already parsed there is returned as is.
func CreateString(ptr item.Pointer) (*StringItem, error) {
	return item.SplitCreate(ptr, parseString)
}

// CreateStringAt is CreateString at a parse-time file offset.
func CreateStringAt(ctx *item.Context, off int) (*StringItem, error) {
	return item.SplitCreateAt(ctx, off, parseString)
}

// Strings returns every string record in file order.
func Strings(ctx *item.Context) []*StringItem {
	var out []*StringItem
	for _, it := range ctx.Items() {
		if s, ok := it.(*StringItem); ok {
			out = append(out, s)
		}
	}
	return out
}
