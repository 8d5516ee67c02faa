package item

import (
	"errors"
	"fmt"
)

// CheckInvariants verifies the structural invariants of c: keys strictly
// increase, only the final EOF sentinel is empty, every item is owned by c,
// and every label points at a live item that lists it.
func (c *Context) CheckInvariants() error {
	if len(c.items) == 0 {
		return errors.New("item: context has no items")
	}
	live := make(map[Item]struct{}, len(c.items))
	for i, it := range c.items {
		if it.Context() != c {
			return fmt.Errorf("item: %s at key 0x%x owned by another context", it.Kind(), it.Key())
		}
		_, isEOF := it.(*EOFItem)
		last := i == len(c.items)-1
		switch {
		case isEOF && !last:
			return fmt.Errorf("item: eof sentinel at index %d of %d", i, len(c.items))
		case last && !isEOF:
			return fmt.Errorf("item: last item is %s, not eof", it.Kind())
		case !isEOF && it.Size() <= 0:
			return fmt.Errorf("item: %s at key 0x%x is empty", it.Kind(), it.Key())
		}
		if i > 0 && c.items[i-1].Key() >= it.Key() {
			return fmt.Errorf("item: key 0x%x not after 0x%x", it.Key(), c.items[i-1].Key())
		}
		live[it] = struct{}{}
	}
	for name, l := range c.labels {
		if l.name != name {
			return fmt.Errorf("item: label %q registered as %q", l.name, name)
		}
		if _, ok := live[l.ptr.Item]; !ok {
			return fmt.Errorf("item: label %q points at a dead item", name)
		}
		found := false
		for _, x := range l.ptr.Item.base().labels {
			if x == l {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("item: label %q missing from its item", name)
		}
	}
	return nil
}

// CheckPartition verifies that item keys and sizes tile [0, Size())
// exactly. It holds from load until an edit changes a record's size.
func (c *Context) CheckPartition() error {
	if err := c.CheckInvariants(); err != nil {
		return err
	}
	pos := 0
	for _, it := range c.items {
		if it.Key() != pos {
			return fmt.Errorf("item: %s at key 0x%x, expected 0x%x", it.Kind(), it.Key(), pos)
		}
		pos += it.Size()
	}
	if pos != len(c.data) {
		return fmt.Errorf("item: items cover 0x%x bytes, file has 0x%x", pos, len(c.data))
	}
	return nil
}
