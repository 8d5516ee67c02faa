package cursor

import (
	"errors"
	"io"

	"github.com/joshuapare/neptkit/internal/buf"
)

// ErrSinkClosed is returned by writes to a sink that was flushed or closed.
var ErrSinkClosed = errors.New("cursor: sink closed")

// Sink is a forward-only writer. Every method that emits bytes advances
// Tell by exactly the number of bytes written.
type Sink interface {
	io.Writer

	WriteU8(v uint8) error
	WriteU16(v uint16) error
	WriteU32(v uint32) error
	WriteU64(v uint64) error
	// WriteCString writes s followed by a NUL terminator.
	WriteCString(s string) error
	// WriteFixedString writes s into an n-byte zero-filled field.
	WriteFixedString(s string, n int) error
	// Pad writes n zero bytes.
	Pad(n int) error
	// PadTo writes zero bytes until Tell is a multiple of align.
	PadTo(align int) error

	Tell() int
	Flush() error
}

// zeros backs Pad; large pads are written in chunks of this size.
var zeros [512]byte

// core implements the typed write helpers shared by all backends.
type core struct {
	w       io.Writer
	pos     int
	scratch [8]byte
}

func (c *core) Write(p []byte) (int, error) {
	if c.w == nil {
		return 0, ErrSinkClosed
	}
	n, err := c.w.Write(p)
	c.pos += n
	return n, err
}

func (c *core) put(p []byte) error {
	_, err := c.Write(p)
	return err
}

func (c *core) Tell() int { return c.pos }

func (c *core) WriteU8(v uint8) error {
	c.scratch[0] = v
	return c.put(c.scratch[:1])
}

func (c *core) WriteU16(v uint16) error {
	buf.PutU16(c.scratch[:], 0, v)
	return c.put(c.scratch[:2])
}

func (c *core) WriteU32(v uint32) error {
	buf.PutU32(c.scratch[:], 0, v)
	return c.put(c.scratch[:4])
}

func (c *core) WriteU64(v uint64) error {
	buf.PutU64(c.scratch[:], 0, v)
	return c.put(c.scratch[:8])
}

func (c *core) WriteCString(s string) error {
	if err := c.put([]byte(s)); err != nil {
		return err
	}
	return c.WriteU8(0)
}

func (c *core) WriteFixedString(s string, n int) error {
	field := make([]byte, n)
	buf.PutFixedString(field, 0, n, s)
	return c.put(field)
}

func (c *core) Pad(n int) error {
	for n > 0 {
		chunk := min(n, len(zeros))
		if err := c.put(zeros[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

func (c *core) PadTo(align int) error {
	return c.Pad(buf.AlignUp(c.pos, align) - c.pos)
}
