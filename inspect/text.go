package inspect

import (
	"bufio"
	"fmt"
	"io"

	"github.com/joshuapare/neptkit/item"
)

func writeText(w io.Writer, ctx *item.Context, opts Options) error {
	bw := bufio.NewWriter(w)
	for _, it := range ctx.Items() {
		for _, l := range it.Labels() {
			if off := l.Ptr().Offset; off != 0 {
				fmt.Fprintf(bw, "@%s: +0x%x\n", l.Name(), off)
			} else {
				fmt.Fprintf(bw, "@%s:\n", l.Name())
			}
		}
		raw, ok := it.(*item.RawItem)
		if !ok {
			if err := it.Inspect(bw); err != nil {
				return err
			}
			continue
		}
		if !opts.ShowRaw {
			fmt.Fprintf(bw, "raw(0x%x bytes)\n", raw.Size())
			continue
		}
		b := raw.Bytes()
		n := min(len(b), opts.maxRaw())
		more := ""
		if n < len(b) {
			more = "..."
		}
		fmt.Fprintf(bw, "raw(0x%x bytes: % x%s)\n", len(b), b[:n], more)
	}
	return bw.Flush()
}
