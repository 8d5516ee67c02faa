package item

import "fmt"

// Pointer addresses a byte inside an Item. It does not own the item.
type Pointer struct {
	Item   Item
	Offset int
}

// IsZero reports whether p points nowhere.
func (p Pointer) IsZero() bool { return p.Item == nil }

func (p Pointer) String() string {
	if p.Item == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s@0x%x+0x%x", p.Item.Kind(), p.Item.Key(), p.Offset)
}

// As returns the pointed-to item as T.
func As[T Item](p Pointer) (T, bool) {
	t, ok := p.Item.(T)
	return t, ok
}

// At0 returns the pointed-to item as T when p addresses its first byte.
func At0[T Item](p Pointer) (T, bool) {
	if p.Offset != 0 {
		var zero T
		return zero, false
	}
	return As[T](p)
}
