// Package item is the structural substrate shared by every file format:
// a file is held as an ordered list of Items that exactly tile its bytes,
// plus a registry of Labels that name positions inside those Items.
//
// # Lifecycle
//
// A Context starts as one RawItem covering the whole buffer followed by the
// EOFItem sentinel. Format parsers recognize structures inside raw regions
// and carve them out with SplitCreate, which replaces the raw item with up
// to three items: a raw prefix, the typed record and a raw suffix.
//
//	ctx := item.NewContext(data)
//	hdr, err := item.SplitCreateAt(ctx, 0, parseHeader)
//
// Discovery follows cross-references rather than file order. A record's
// constructor decodes and validates its own fields, registers Labels for the
// offsets it refers to and returns; the driver then follows those labels,
// usually through a Worklist, until no reachable raw target remains.
//
// # Addressing
//
// Cross-references are never stored as absolute offsets. A Label binds a
// name to a Pointer (item, offset inside the item); when an item is split,
// its labels move to whichever new item covers them, so references taken
// before the split keep resolving. Absolute positions only exist while
// serializing: ToFilePos sums the sizes of the preceding items, so records
// may grow or shrink between parse and Dump.
//
// # Ownership
//
// The Context owns every Item and Label. Items refer to each other only
// through Labels, so the reference graph may contain cycles. A Context is
// not safe for concurrent use.
package item
