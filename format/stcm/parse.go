package stcm

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/joshuapare/neptkit/errs"
	"github.com/joshuapare/neptkit/item"
)

// Parse decodes the header at offset 0, the export table and the
// collection-link structures.
func Parse(ctx *item.Context) (*HeaderItem, error) {
	hdr, err := item.SplitCreateAt(ctx, 0, parseHeader)
	if err != nil {
		return nil, err
	}

	if hdr.exportCount > 0 {
		x, err := item.SplitCreate(hdr.exports.Ptr(), exportsCtor(hdr.exportCount))
		if err != nil {
			return nil, fmt.Errorf("stcm: exports: %w", err)
		}
		if len(x.entries) != int(hdr.exportCount) {
			return nil, countMismatch("Stcm::Header", "export_count", x, len(x.entries), hdr.exportCount)
		}
	}

	if _, err := ParseCollectionLink(hdr.collectionLink.Ptr()); err != nil {
		return nil, fmt.Errorf("stcm: collection link: %w", err)
	}
	ctx.Logger().Debug("stcm parsed", "exports", hdr.exportCountNow())
	return hdr, nil
}

// ParseCollectionLink decodes the collection-link header at ptr, its entry
// table and every string the entries name.
//
// An empty table is not materialized: the header's label keeps pointing
// where the file said, which in practice is the end-of-file sentinel, and
// the header dumps a count of zero.
func ParseCollectionLink(ptr item.Pointer) (*CollectionLinkHeaderItem, error) {
	h, err := item.SplitCreate(ptr, parseCollectionLinkHeader)
	if err != nil {
		return nil, err
	}
	ctx := h.Context()
	if h.count == 0 {
		target := h.data.Ptr()
		ctx.Logger().Debug("stcm: empty collection link table",
			"label", h.data.Name(), "target", target.String())
		return h, nil
	}

	table, err := item.SplitCreate(h.data.Ptr(), collectionLinkCtor(h.count))
	if err != nil {
		return nil, err
	}
	if len(table.entries) != int(h.count) {
		return nil, countMismatch("Stcm::CollectionLinkHeader", "count", table, len(table.entries), h.count)
	}

	// Strings are visited in file order so a string is split before any
	// label pointing into its tail.
	var names []*item.Label
	for _, e := range table.entries {
		names = append(names, e.Name0, e.Name1)
	}
	slices.SortStableFunc(names, func(a, b *item.Label) int {
		return cmp.Compare(ctx.ToFilePos(a.Ptr()), ctx.ToFilePos(b.Ptr()))
	})
	w := item.NewWorklist(ctx)
	for _, l := range names {
		w.Push(item.Task{Label: l, Visit: visitCString})
	}
	if err := w.Run(); err != nil {
		return nil, err
	}
	return h, nil
}

func countMismatch(record, field string, it item.Item, have int, want uint32) error {
	return &errs.DecodeError{
		Record: record,
		Field:  field,
		Offset: int64(it.Key()),
		Value:  want,
		Msg:    fmt.Sprintf("table already parsed with %d entries", have),
		Err:    errs.ErrOverlap,
	}
}
