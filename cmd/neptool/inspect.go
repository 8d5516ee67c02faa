package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/neptkit/inspect"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "List the items and labels of a file",
		Long: `The inspect command parses a file and prints every item in file order,
each preceded by the labels anchored in it.

Example:
  neptool inspect script.stcm
  neptool inspect data.cl3 --show-raw --max-raw-bytes 32
  neptool inspect data.cl3 -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()
			return inspect.Write(a.out, doc.Ctx, a.cfg.InspectOptions())
		},
	}
}
