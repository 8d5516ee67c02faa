package item

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/joshuapare/neptkit/cursor"
	"github.com/joshuapare/neptkit/errs"
	"github.com/joshuapare/neptkit/internal/logger"
)

// DefaultAutoLabelPrefix prefixes the names GetLabelTo invents.
const DefaultAutoLabelPrefix = "off_"

// Context owns the items and labels of one file.
type Context struct {
	data       []byte
	items      []Item // file order; keys strictly increasing
	labels     map[string]*Label
	log        *slog.Logger
	autoPrefix string
	closer     func() error
}

// Option configures a Context.
type Option func(*Context)

// WithLogger routes split and discovery traces to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// WithAutoLabelPrefix changes the prefix of generated label names.
func WithAutoLabelPrefix(prefix string) Option {
	return func(c *Context) { c.autoPrefix = prefix }
}

// WithCloser registers fn to run when the Context is closed, after every
// item has been disposed. Loaders use it to release the input buffer.
func WithCloser(fn func() error) Option {
	return func(c *Context) { c.closer = fn }
}

// NewContext seeds a Context with one raw item spanning data and the EOF
// sentinel. data must stay unmodified for the Context's lifetime.
func NewContext(data []byte, opts ...Option) *Context {
	c := &Context{
		data:       data,
		labels:     make(map[string]*Label),
		log:        logger.L,
		autoPrefix: DefaultAutoLabelPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(data) > 0 {
		root := newRaw(data)
		root.attach(c, 0)
		c.items = append(c.items, root)
	}
	eof := &EOFItem{}
	eof.attach(c, len(data))
	c.items = append(c.items, eof)
	return c
}

// Size is the size of the file the Context was parsed from. Validators
// compare offsets against it.
func (c *Context) Size() int { return len(c.data) }

// Data returns the original input buffer.
func (c *Context) Data() []byte { return c.data }

// CurrentSize is the number of bytes Dump would write now.
func (c *Context) CurrentSize() int {
	n := 0
	for _, it := range c.items {
		n += it.Size()
	}
	return n
}

// Items returns the items in file order.
func (c *Context) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Root returns the first item.
func (c *Context) Root() Item { return c.items[0] }

// EOF returns the sentinel.
func (c *Context) EOF() *EOFItem { return c.items[len(c.items)-1].(*EOFItem) }

// Logger returns the Context's logger.
func (c *Context) Logger() *slog.Logger { return c.log }

// Pointer maps a parse-time file offset to the item covering it. An offset
// equal to the file size maps to the EOF sentinel.
func (c *Context) Pointer(off int) (Pointer, error) {
	if off < 0 || off > len(c.data) {
		return Pointer{}, &errs.DecodeError{
			Offset: int64(off),
			Msg:    fmt.Sprintf("offset outside file of size 0x%x", len(c.data)),
			Err:    errs.ErrValidation,
		}
	}
	i := sort.Search(len(c.items), func(i int) bool { return c.items[i].Key() > off }) - 1
	it := c.items[i]
	rel := off - it.Key()
	if rel >= it.Size() && !(rel == 0 && it.Size() == 0) {
		return Pointer{}, &errs.DecodeError{
			Offset: int64(off),
			Msg:    fmt.Sprintf("offset not covered by %s item at key 0x%x", it.Kind(), it.Key()),
			Err:    errs.ErrValidation,
		}
	}
	return Pointer{Item: it, Offset: rel}, nil
}

// ToFilePos resolves p to an absolute offset in the serialized file. The
// result reflects current item sizes and is never cached.
func (c *Context) ToFilePos(p Pointer) int {
	idx := c.indexOf(p.Item)
	pos := 0
	for _, it := range c.items[:idx] {
		pos += it.Size()
	}
	return pos + p.Offset
}

// indexOf returns it's position in c.items, panicking if c does not own it.
func (c *Context) indexOf(it Item) int {
	if it == nil || it.Context() != c {
		panic(fmt.Sprintf("item: %v is not owned by this context", it))
	}
	key := it.Key()
	i := sort.Search(len(c.items), func(i int) bool { return c.items[i].Key() >= key })
	if i == len(c.items) || c.items[i] != it {
		panic(fmt.Sprintf("item: %s at key 0x%x missing from context", it.Kind(), key))
	}
	return i
}

// Replace swaps old for repl, which takes over old's key and labels. repl
// must be detached. old is disposed.
func (c *Context) Replace(old, repl Item) {
	idx := c.indexOf(old)
	if repl.Context() != nil {
		panic("item: replacement is already attached")
	}
	ob, nb := old.base(), repl.base()
	nb.attach(c, ob.key)
	for _, l := range ob.labels {
		l.ptr.Item = repl
		nb.addLabel(l)
	}
	ob.labels = nil
	c.items[idx] = repl
	old.Dispose()
	ob.ctx = nil
	c.log.Debug("item replaced", "key", ob.key, "old", old.Kind(), "new", repl.Kind())
}

// Dump serializes every item in order.
func (c *Context) Dump(s cursor.Sink) error {
	start := s.Tell()
	for _, it := range c.items {
		before := s.Tell()
		if err := it.Dump(s); err != nil {
			return fmt.Errorf("dump %s at 0x%x: %w", it.Kind(), before-start, err)
		}
		if n := s.Tell() - before; n != it.Size() {
			return fmt.Errorf("dump %s at 0x%x: wrote 0x%x bytes, size is 0x%x", it.Kind(), before-start, n, it.Size())
		}
	}
	return nil
}

// Bytes serializes the Context into a new buffer.
func (c *Context) Bytes() ([]byte, error) {
	ms := cursor.NewMemorySink(c.CurrentSize())
	if err := c.Dump(ms); err != nil {
		return nil, err
	}
	return ms.Bytes(), nil
}

// Inspect writes a human-readable listing: each item's labels followed by
// the item's own rendering.
func (c *Context) Inspect(w io.Writer) error {
	for _, it := range c.items {
		for _, l := range it.base().labels {
			var err error
			if l.ptr.Offset == 0 {
				_, err = fmt.Fprintf(w, "@%s:\n", l.name)
			} else {
				_, err = fmt.Fprintf(w, "@%s: +0x%x\n", l.name, l.ptr.Offset)
			}
			if err != nil {
				return err
			}
		}
		if err := it.Inspect(w); err != nil {
			return err
		}
	}
	return nil
}

// Close disposes every item and releases the input buffer. The Context
// must not be used afterwards.
func (c *Context) Close() error {
	if c.items == nil {
		return nil
	}
	for _, it := range c.items {
		it.Dispose()
	}
	for _, it := range c.items {
		b := it.base()
		b.labels = nil
		b.ctx = nil
	}
	c.items = nil
	c.labels = nil
	if c.closer != nil {
		err := c.closer()
		c.closer = nil
		return err
	}
	return nil
}
