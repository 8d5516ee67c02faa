package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/neptkit/inspect"
)

func newLabelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "labels <file>",
		Short: "List labels and the offsets they resolve to",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			listing, err := inspect.Build(doc.Ctx, a.cfg.InspectOptions())
			if err != nil {
				return err
			}
			switch strings.ToLower(a.cfg.Inspect.Format) {
			case inspect.FormatJSON:
				return a.printJSON(listing.Labels)
			case inspect.FormatCBOR:
				return inspect.WriteCBOR(a.out, listing.Labels)
			}
			for _, l := range listing.Labels {
				lbl, _ := doc.Ctx.Label(l.Name)
				fmt.Fprintf(a.out, "%-32s 0x%08x  %s\n", l.Name, l.Pos, lbl.Ptr())
			}
			return nil
		},
	}
}
