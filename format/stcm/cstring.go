package stcm

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/neptkit/cursor"
	"github.com/joshuapare/neptkit/item"
)

// CStringItem is a NUL-terminated string. The bytes are kept as found.
type CStringItem struct {
	item.Base
	data []byte
}

func (c *CStringItem) Size() int    { return len(c.data) + 1 }
func (c *CStringItem) Kind() string { return "stcm.cstring" }

// String returns the string without its terminator.
func (c *CStringItem) String() string { return string(c.data) }

// SetString replaces the string. It must not contain NUL.
func (c *CStringItem) SetString(s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("stcm: string %q contains NUL", s)
	}
	c.data = []byte(s)
	return nil
}

func (c *CStringItem) Dump(s cursor.Sink) error {
	if _, err := s.Write(c.data); err != nil {
		return err
	}
	return s.WriteU8(0)
}

func (c *CStringItem) Inspect(w io.Writer) error {
	_, err := fmt.Fprintf(w, "cstring(%q)\n", c.data)
	return err
}

func parseCString(_ *item.Context, src *cursor.Source) (*CStringItem, error) {
	b, err := src.ReadCString()
	if err != nil {
		return nil, err
	}
	return &CStringItem{data: b}, nil
}

// visitCString is the work-list step for a label naming a string.
func visitCString(ptr item.Pointer) ([]item.Task, error) {
	if _, err := item.SplitCreate(ptr, parseCString); err != nil {
		return nil, err
	}
	return nil, nil
}
