package item

import (
	"errors"
	"fmt"
	"sort"
)

// ErrLabelExists is returned when a label name is already taken.
var ErrLabelExists = errors.New("item: label name already in use")

// Label is a named anchor. Records hold *Label instead of offsets; the
// position is only turned into a number while dumping.
type Label struct {
	name string
	ptr  Pointer
}

func (l *Label) Name() string { return l.name }

// Ptr returns where the label currently points. The pointer is kept up to
// date across splits and replacements.
func (l *Label) Ptr() Pointer { return l.ptr }

func (l *Label) String() string { return "@" + l.name }

// Label returns the label called name.
func (c *Context) Label(name string) (*Label, bool) {
	l, ok := c.labels[name]
	return l, ok
}

// Labels returns every label sorted by name.
func (c *Context) Labels() []*Label {
	out := make([]*Label, 0, len(c.labels))
	for _, l := range c.labels {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// GetLabelTo returns the label anchored at the parse-time file offset off,
// creating one named after the offset if none exists yet.
func (c *Context) GetLabelTo(off int) (*Label, error) {
	ptr, err := c.Pointer(off)
	if err != nil {
		return nil, err
	}
	if ls := ptr.Item.base().LabelsAt(ptr.Offset); len(ls) > 0 {
		return ls[0], nil
	}
	return c.newLabel(c.uniqueName(fmt.Sprintf("%s%08x", c.autoPrefix, off)), ptr), nil
}

// CreateLabelFallback is GetLabelTo with a caller-chosen name for the label
// it creates. An existing label at off is returned unchanged; if name is
// taken elsewhere a numeric suffix is appended.
func (c *Context) CreateLabelFallback(name string, off int) (*Label, error) {
	ptr, err := c.Pointer(off)
	if err != nil {
		return nil, err
	}
	if ls := ptr.Item.base().LabelsAt(ptr.Offset); len(ls) > 0 {
		return ls[0], nil
	}
	return c.newLabel(c.uniqueName(name), ptr), nil
}

// AddLabel creates a label with exactly name at ptr.
func (c *Context) AddLabel(name string, ptr Pointer) (*Label, error) {
	if _, ok := c.labels[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrLabelExists, name)
	}
	c.mustOwn(ptr)
	return c.newLabel(name, ptr), nil
}

// RenameLabel changes l's name. References to l are unaffected.
func (c *Context) RenameLabel(l *Label, name string) error {
	if l.name == name {
		return nil
	}
	if _, ok := c.labels[name]; ok {
		return fmt.Errorf("%w: %q", ErrLabelExists, name)
	}
	delete(c.labels, l.name)
	l.name = name
	c.labels[name] = l
	return nil
}

// MoveLabel re-points l. Every record referring to l will dump the new
// position.
func (c *Context) MoveLabel(l *Label, ptr Pointer) {
	c.mustOwn(ptr)
	l.ptr.Item.base().removeLabel(l)
	l.ptr = ptr
	ptr.Item.base().addLabel(l)
	c.log.Debug("label moved", "label", l.name, "to", ptr.String())
}

func (c *Context) newLabel(name string, ptr Pointer) *Label {
	l := &Label{name: name, ptr: ptr}
	c.labels[name] = l
	ptr.Item.base().addLabel(l)
	return l
}

func (c *Context) uniqueName(name string) string {
	if _, ok := c.labels[name]; !ok {
		return name
	}
	for i := 0; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if _, ok := c.labels[candidate]; !ok {
			return candidate
		}
	}
}

// mustOwn panics unless ptr addresses a live item of c.
func (c *Context) mustOwn(ptr Pointer) {
	if ptr.Item == nil || ptr.Item.Context() != c {
		panic(fmt.Sprintf("item: pointer %v does not belong to this context", ptr))
	}
	size := ptr.Item.Size()
	if ptr.Offset < 0 || (ptr.Offset >= size && !(size == 0 && ptr.Offset == 0)) {
		panic(fmt.Sprintf("item: pointer %v outside item of size 0x%x", ptr, size))
	}
}
