package cl3

import (
	"fmt"

	"github.com/joshuapare/neptkit/errs"
	"github.com/joshuapare/neptkit/item"
)

// Parse decodes the archive header at offset 0, its section table and
// every non-empty section payload.
func Parse(ctx *item.Context) (*HeaderItem, error) {
	hdr, err := item.SplitCreateAt(ctx, 0, parseHeader)
	if err != nil {
		return nil, err
	}
	if hdr.count == 0 {
		return hdr, nil
	}

	// The table is contiguous. Nothing has been resized yet, so file
	// positions are still parse-time offsets.
	base := ctx.ToFilePos(hdr.sections.Ptr())
	sections := make([]*SectionItem, 0, hdr.count)
	for i := range int(hdr.count) {
		sec, err := item.SplitCreateAt(ctx, base+i*SectionSize, parseSection)
		if err != nil {
			return nil, fmt.Errorf("cl3: section %d: %w", i, err)
		}
		sections = append(sections, sec)
	}

	for i, sec := range sections {
		if sec.dataSize == 0 {
			continue
		}
		d, err := item.SplitCreate(sec.data.Ptr(), dataCtor(int(sec.dataSize)))
		if err != nil {
			return nil, fmt.Errorf("cl3: section %d %q data: %w", i, sec.Name(), err)
		}
		if d.Size() != int(sec.dataSize) {
			return nil, fmt.Errorf("cl3: section %d %q data: %w", i, sec.Name(), &errs.DecodeError{
				Record: "Cl3::Section",
				Field:  "data_size",
				Offset: int64(d.Key()),
				Value:  sec.dataSize,
				Msg:    fmt.Sprintf("payload already parsed with size 0x%x", d.Size()),
				Err:    errs.ErrOverlap,
			})
		}
	}
	ctx.Logger().Debug("cl3 parsed", "sections", len(sections))
	return hdr, nil
}
