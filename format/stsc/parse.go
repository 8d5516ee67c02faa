package stsc

import (
	"fmt"

	"github.com/joshuapare/neptkit/item"
)

// Parse decodes the header at offset 0 and the strings at the given
// parse-time offsets.
func Parse(ctx *item.Context, stringOffsets ...int) (*HeaderItem, error) {
	hdr, err := item.SplitCreateAt(ctx, 0, parseHeader)
	if err != nil {
		return nil, err
	}
	for _, off := range stringOffsets {
		if _, err := CreateStringAt(ctx, off); err != nil {
			return nil, fmt.Errorf("stsc: string at 0x%x: %w", off, err)
		}
	}
	ctx.Logger().Debug("stsc parsed", "flags", hdr.flags, "strings", len(stringOffsets))
	return hdr, nil
}
